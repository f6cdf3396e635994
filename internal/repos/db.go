package repos

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (idempotent; safe to run every start)
	if err := seedSchools(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

// now returns a fixed-width UTC timestamp that sorts correctly both as text
// in SQL and as a Go string.
func now() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05.000000000")
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  username TEXT,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'USER' CHECK (role IN ('USER','ADMIN')),
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

CREATE TABLE IF NOT EXISTS school_colleges(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  city TEXT,
  state TEXT
);

CREATE TABLE IF NOT EXISTS profiles(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
  full_name TEXT NOT NULL,
  display_name TEXT,
  gender TEXT,
  phone TEXT,
  school_college_id TEXT REFERENCES school_colleges(id),
  class_year TEXT,
  course TEXT,
  department TEXT,
  address TEXT,
  city TEXT,
  state TEXT,
  pincode TEXT,
  country TEXT NOT NULL DEFAULT 'India',
  latitude REAL,
  longitude REAL,
  avatar_url TEXT,
  bio TEXT
);

-- Listed items
CREATE TABLE IF NOT EXISTS stuffs(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES users(id),
  type TEXT NOT NULL CHECK (type IN ('BOOK','STATIONERY','ELECTRONICS','NOTES','OTHER')),
  title TEXT NOT NULL,
  subtitle TEXT,
  description TEXT,
  condition TEXT NOT NULL CHECK (condition IN ('NEW','LIKE_NEW','GOOD','FAIR','POOR')),
  original_price NUMERIC NOT NULL CHECK (original_price >= 0),
  quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),

  -- BOOK-only columns
  author TEXT,
  publisher TEXT,
  edition TEXT,
  isbn TEXT,
  publication_year INTEGER,
  book_type TEXT,

  -- STATIONERY-only columns
  brand TEXT,
  model TEXT,
  stationery_type TEXT,

  language TEXT DEFAULT 'English',
  subject TEXT,
  genre TEXT,
  class_suitability TEXT,

  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_stuffs_owner ON stuffs(owner_id);
CREATE INDEX IF NOT EXISTS idx_stuffs_type  ON stuffs(type);

CREATE TABLE IF NOT EXISTS stuff_images(
  id TEXT PRIMARY KEY,
  stuff_id TEXT NOT NULL REFERENCES stuffs(id),
  url TEXT NOT NULL,
  alt_text TEXT,
  is_primary INTEGER NOT NULL DEFAULT 0,
  position INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_stuff_images_stuff ON stuff_images(stuff_id);

CREATE TABLE IF NOT EXISTS tags(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE           -- stored normalized (lowercase, trimmed)
);

CREATE TABLE IF NOT EXISTS stuff_tags(
  stuff_id TEXT NOT NULL REFERENCES stuffs(id),
  tag_id   TEXT NOT NULL REFERENCES tags(id),
  PRIMARY KEY (stuff_id, tag_id)
);

CREATE TABLE IF NOT EXISTS offers(
  id TEXT PRIMARY KEY,
  stuff_id TEXT NOT NULL REFERENCES stuffs(id),
  user_id TEXT NOT NULL REFERENCES users(id),
  offer_type TEXT NOT NULL CHECK (offer_type IN ('SELL','LEND','RENT','SHARE','EXCHANGE')),
  price NUMERIC,
  rental_price_per_day NUMERIC,
  rental_period_days INTEGER,
  security_deposit NUMERIC,
  exchange_item_description TEXT,
  exchange_item_value NUMERIC,
  availability_start TEXT,
  availability_end TEXT,
  quantity_available INTEGER NOT NULL DEFAULT 1,
  pickup_address TEXT,
  latitude REAL,
  longitude REAL,
  city TEXT,
  state TEXT,
  pincode TEXT,
  visibility_scope TEXT NOT NULL DEFAULT 'PUBLIC' CHECK (visibility_scope IN ('PUBLIC','COLLEGE','CLASS')),
  terms_conditions TEXT,
  special_instructions TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  expires_at TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_offers_stuff ON offers(stuff_id);
CREATE INDEX IF NOT EXISTS idx_offers_user  ON offers(user_id);

-- Messaging
CREATE TABLE IF NOT EXISTS messages(
  id TEXT PRIMARY KEY,                -- ulid; time-ordered
  sender_id TEXT NOT NULL REFERENCES users(id),
  receiver_id TEXT NOT NULL REFERENCES users(id),
  offer_id TEXT NULL REFERENCES offers(id),
  subject TEXT,
  text TEXT NOT NULL,
  trade_request_status TEXT,
  is_read INTEGER NOT NULL DEFAULT 0,
  sent_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_sender   ON messages(sender_id);
CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages(receiver_id);
CREATE INDEX IF NOT EXISTS idx_messages_offer    ON messages(offer_id);

CREATE TABLE IF NOT EXISTS notifications(
  id TEXT PRIMARY KEY,                -- ulid
  user_id TEXT NOT NULL REFERENCES users(id),
  type TEXT NOT NULL,
  title TEXT NOT NULL,
  body TEXT NOT NULL,
  data_json TEXT,
  is_read INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, is_read);

-- Favorites, reviews
CREATE TABLE IF NOT EXISTS stuff_favorites(
  user_id  TEXT NOT NULL REFERENCES users(id),
  stuff_id TEXT NOT NULL REFERENCES stuffs(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_id, stuff_id)
);

CREATE TABLE IF NOT EXISTS reviews(
  id TEXT PRIMARY KEY,
  reviewer_id TEXT NOT NULL REFERENCES users(id),
  target_user_id TEXT NOT NULL REFERENCES users(id),
  stuff_id TEXT NULL,
  trade_id TEXT NULL,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  title TEXT,
  message TEXT NOT NULL,
  type TEXT NOT NULL CHECK (type IN ('UNIVERSAL_STUFF','THANK_YOU_MESSAGE','USER_RATING')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_reviews_stuff ON reviews(stuff_id);

-- Trades
CREATE TABLE IF NOT EXISTS trades(
  id TEXT PRIMARY KEY,
  offer_id TEXT NOT NULL REFERENCES offers(id),
  borrower_id TEXT NOT NULL REFERENCES users(id),
  lender_id TEXT NOT NULL REFERENCES users(id),
  status TEXT NOT NULL DEFAULT 'PENDING'
    CHECK (status IN ('PENDING','ACCEPTED','REJECTED','IN_PROGRESS','COMPLETED','OVERDUE','CANCELLED')),
  agreed_price NUMERIC,
  security_deposit NUMERIC,
  start_date TEXT,
  end_date TEXT,
  actual_return_date TEXT,
  late_fee NUMERIC,
  borrower_notes TEXT,
  lender_notes TEXT,
  pickup_code TEXT,
  return_code TEXT,
  borrower_rating INTEGER CHECK (borrower_rating BETWEEN 1 AND 5),
  lender_rating INTEGER CHECK (lender_rating BETWEEN 1 AND 5),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_trades_offer ON trades(offer_id);

-- Wanted posts
CREATE TABLE IF NOT EXISTS requests(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  stuff_type TEXT NOT NULL CHECK (stuff_type IN ('BOOK','STATIONERY','ELECTRONICS','NOTES','OTHER')),
  title TEXT,
  description TEXT NOT NULL,
  subject TEXT,
  class_year TEXT,
  urgency_level TEXT NOT NULL DEFAULT 'MEDIUM' CHECK (urgency_level IN ('LOW','MEDIUM','HIGH','URGENT')),
  needed_by_date TEXT,
  rental_duration_days INTEGER,
  max_price NUMERIC,
  max_rental_per_day NUMERIC,
  target_school_college_id TEXT,
  latitude REAL,
  longitude REAL,
  search_radius_km REAL NOT NULL DEFAULT 10.0,
  status TEXT NOT NULL DEFAULT 'OPEN' CHECK (status IN ('OPEN','MATCHED','FULFILLED','CLOSED','EXPIRED')),
  expires_at TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS reminders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  trade_id TEXT NULL,
  title TEXT NOT NULL,
  message TEXT NOT NULL,
  due_date TEXT NOT NULL,
  type TEXT NOT NULL CHECK (type IN ('RETURN_DUE','PICKUP_DUE','OFFER_EXPIRY','PAYMENT_DUE','CUSTOM')),
  is_sent INTEGER NOT NULL DEFAULT 0,
  is_dismissed INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_reminders_user ON reminders(user_id, due_date);
`
	_, err := db.Exec(schema)
	return err
}

func seedSchools(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM school_colleges`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo school/colleges")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO school_colleges(id,name,city,state) VALUES
	  ('sc-dps-rkp','Delhi Public School, R.K. Puram','New Delhi','Delhi'),
	  ('sc-iit-b','IIT Bombay','Mumbai','Maharashtra'),
	  ('sc-sxc-kol','St. Xavier''s College','Kolkata','West Bengal')`)
	return tx.Commit()
}

// seedUsers ensures a couple of demo accounts exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Username, Role, Hash string
	}
	mk := func(id, email, username, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Username: username, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-asha", "asha@vidyarth.test", "asha", "USER", "Passw0rd!"),
		mk("u-ravi", "ravi@vidyarth.test", "ravi", "USER", "Passw0rd!"),
		mk("u-admin", "admin@vidyarth.test", "admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,username,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Username, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
