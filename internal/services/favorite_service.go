package services

import (
	"vidyarth/internal/domain"
	"vidyarth/internal/repos"
)

type FavoriteService struct {
	Repo   *repos.FavoriteRepo
	Stuffs *repos.StuffRepo
}

func NewFavoriteService(r *repos.FavoriteRepo, stuffs *repos.StuffRepo) *FavoriteService {
	return &FavoriteService{Repo: r, Stuffs: stuffs}
}

func (s *FavoriteService) Save(userID, stuffID string) error {
	return s.Repo.Add(userID, stuffID)
}

func (s *FavoriteService) Unsave(userID, stuffID string) error {
	return s.Repo.Remove(userID, stuffID)
}

// List returns the user's favorites hydrated into full listings, most
// recently saved first.
func (s *FavoriteService) List(userID string) ([]*domain.Stuff, error) {
	ids, err := s.Repo.ListStuffIDs(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Stuff, 0, len(ids))
	for _, id := range ids {
		st, err := s.Stuffs.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}
