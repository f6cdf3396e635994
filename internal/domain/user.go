package domain

type User struct {
	ID       string `db:"id" json:"user_id"`
	Email    string `db:"email" json:"email"`
	Username string `db:"username" json:"username"`
	Hash     string `db:"password_hash" json:"-"`
	Role     string `db:"role" json:"role"` // USER | ADMIN
	IsActive bool   `db:"is_active" json:"is_active"`
}

type Profile struct {
	ID              string   `db:"id" json:"profile_id"`
	UserID          string   `db:"user_id" json:"user_id"`
	FullName        string   `db:"full_name" json:"full_name"`
	DisplayName     string   `db:"display_name" json:"display_name,omitempty"`
	Gender          string   `db:"gender" json:"gender,omitempty"`
	Phone           string   `db:"phone" json:"phone,omitempty"`
	SchoolCollegeID string   `db:"school_college_id" json:"school_college_id,omitempty"`
	ClassYear       string   `db:"class_year" json:"class_year,omitempty"`
	Course          string   `db:"course" json:"course,omitempty"`
	Department      string   `db:"department" json:"department,omitempty"`
	Address         string   `db:"address" json:"address,omitempty"`
	City            string   `db:"city" json:"city,omitempty"`
	State           string   `db:"state" json:"state,omitempty"`
	Pincode         string   `db:"pincode" json:"pincode,omitempty"`
	Country         string   `db:"country" json:"country"`
	Latitude        *float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude       *float64 `db:"longitude" json:"longitude,omitempty"`
	AvatarURL       string   `db:"avatar_url" json:"avatar_url,omitempty"`
	Bio             string   `db:"bio" json:"bio,omitempty"`
}
