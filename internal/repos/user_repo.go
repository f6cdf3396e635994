package repos

import (
	"vidyarth/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id,email,COALESCE(username,'') AS username,password_hash,role,is_active`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Exists(id string) (bool, error) {
	var n int
	if err := r.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE id=?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateWithProfile inserts the user row and its profile in one transaction.
func (r *UserRepo) CreateWithProfile(u *domain.User, p *domain.Profile) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO users(id,email,username,password_hash,role,is_active)
		VALUES(?,?,?,?,?,?)
	`, u.ID, u.Email, u.Username, u.Hash, u.Role, u.IsActive); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO profiles(id,user_id,full_name,display_name,gender,phone,school_college_id,
		  class_year,course,department,address,city,state,pincode,country,latitude,longitude,avatar_url,bio)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, p.ID, u.ID, p.FullName, p.DisplayName, p.Gender, p.Phone, nullable(p.SchoolCollegeID),
		p.ClassYear, p.Course, p.Department, p.Address, p.City, p.State, p.Pincode, p.Country,
		p.Latitude, p.Longitude, p.AvatarURL, p.Bio); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *UserRepo) ProfileByUser(userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.DB.Get(&p, `
		SELECT id, user_id, full_name,
		  COALESCE(display_name,'') AS display_name,
		  COALESCE(gender,'') AS gender,
		  COALESCE(phone,'') AS phone,
		  COALESCE(school_college_id,'') AS school_college_id,
		  COALESCE(class_year,'') AS class_year,
		  COALESCE(course,'') AS course,
		  COALESCE(department,'') AS department,
		  COALESCE(address,'') AS address,
		  COALESCE(city,'') AS city,
		  COALESCE(state,'') AS state,
		  COALESCE(pincode,'') AS pincode,
		  country, latitude, longitude,
		  COALESCE(avatar_url,'') AS avatar_url,
		  COALESCE(bio,'') AS bio
		FROM profiles WHERE user_id=?`, userID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.email,COALESCE(u.username,'') AS username,u.password_hash,u.role,u.is_active
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

// DeleteUserCascade removes the profile and sessions, then the user row,
// in one transaction.
func (r *UserRepo) DeleteUserCascade(userID string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM profiles WHERE user_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM sessions WHERE user_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id=?`, userID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *UserRepo) SchoolColleges() ([]domain.SchoolCollege, error) {
	var out []domain.SchoolCollege
	err := r.DB.Select(&out, `
		SELECT id, name, COALESCE(city,'') AS city, COALESCE(state,'') AS state
		FROM school_colleges ORDER BY name`)
	return out, err
}

// nullable maps "" to NULL for optional foreign keys.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
