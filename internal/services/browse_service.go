package services

import (
	"math"

	"vidyarth/internal/domain"
	"vidyarth/internal/repos"
	"vidyarth/internal/validate"
)

type BrowseService struct {
	Repo *repos.BrowseRepo
}

func NewBrowseService(r *repos.BrowseRepo) *BrowseService { return &BrowseService{Repo: r} }

// BrowseQuery is the public search surface. Latitude, Longitude and
// RadiusKM together enable the distance filter; partial coordinates are
// rejected.
type BrowseQuery struct {
	Query     string
	StuffType string
	OfferType string
	Condition string
	Tag       string
	City      string
	MinPrice  *float64
	MaxPrice  *float64

	Latitude  *float64
	Longitude *float64
	RadiusKM  float64

	Limit int
}

func (s *BrowseService) Search(q BrowseQuery) ([]repos.BrowseItem, error) {
	if q.StuffType != "" && !validate.StuffType(q.StuffType) {
		return nil, domain.Invalid("type", "")
	}
	if q.OfferType != "" && !validate.OfferType(q.OfferType) {
		return nil, domain.Invalid("offer_type", "")
	}
	if q.Condition != "" && !validate.Condition(q.Condition) {
		return nil, domain.Invalid("condition", "")
	}
	if (q.Latitude == nil) != (q.Longitude == nil) {
		return nil, domain.Invalid("location", "latitude and longitude must be given together")
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 50
	}

	items, err := s.Repo.Search(repos.BrowseFilter{
		Query:     q.Query,
		StuffType: q.StuffType,
		OfferType: q.OfferType,
		Condition: q.Condition,
		Tag:       validate.NormalizeTag(q.Tag),
		City:      q.City,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		Limit:     q.Limit,
	})
	if err != nil {
		return nil, err
	}

	if q.Latitude == nil || q.RadiusKM <= 0 {
		return items, nil
	}

	// Distance is filtered in process: the dataset a campus search sees is
	// small, and the SQL layer stays free of trigonometry.
	out := items[:0]
	for _, it := range items {
		if it.Offer.Latitude == nil || it.Offer.Longitude == nil {
			continue
		}
		d := haversineKM(*q.Latitude, *q.Longitude, *it.Offer.Latitude, *it.Offer.Longitude)
		if d <= q.RadiusKM {
			out = append(out, it)
		}
	}
	return out, nil
}

// haversineKM returns the great-circle distance between two coordinates.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKM = 6371.0
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}
