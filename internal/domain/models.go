package domain

// Stuff categories.
const (
	StuffBook        = "BOOK"
	StuffStationery  = "STATIONERY"
	StuffElectronics = "ELECTRONICS"
	StuffNotes       = "NOTES"
	StuffOther       = "OTHER"
)

// Item conditions.
const (
	CondNew     = "NEW"
	CondLikeNew = "LIKE_NEW"
	CondGood    = "GOOD"
	CondFair    = "FAIR"
	CondPoor    = "POOR"
)

// Offer types.
const (
	OfferSell     = "SELL"
	OfferLend     = "LEND"
	OfferRent     = "RENT"
	OfferShare    = "SHARE"
	OfferExchange = "EXCHANGE"
)

// Offer visibility scopes.
const (
	VisibilityPublic  = "PUBLIC"
	VisibilityCollege = "COLLEGE"
	VisibilityClass   = "CLASS"
)

// BookDetails holds the fields valid only for BOOK items.
type BookDetails struct {
	Author          string `json:"author"`
	Publisher       string `json:"publisher,omitempty"`
	Edition         string `json:"edition,omitempty"`
	ISBN            string `json:"isbn,omitempty"`
	PublicationYear int    `json:"publication_year,omitempty"`
	BookType        string `json:"book_type,omitempty"` // TEXTBOOK | REFERENCE | NOVEL | JOURNAL | MAGAZINE | WORKBOOK | GUIDE
}

// StationeryDetails holds the fields valid only for STATIONERY items.
type StationeryDetails struct {
	Brand          string `json:"brand,omitempty"`
	Model          string `json:"model,omitempty"`
	StationeryType string `json:"stationery_type,omitempty"` // WRITING | DRAWING | CALCULATION | STORAGE | CRAFT | OTHER
}

// Stuff is a listed item. At most one of Book/Stationery is set, and only
// when Type matches; everything else shares the common envelope.
type Stuff struct {
	ID            string  `json:"stuff_id"`
	OwnerID       string  `json:"owner_id"`
	Type          string  `json:"type"`
	Title         string  `json:"title"`
	Subtitle      string  `json:"subtitle,omitempty"`
	Description   string  `json:"description,omitempty"`
	Condition     string  `json:"condition"`
	OriginalPrice float64 `json:"original_price"`
	Quantity      int     `json:"quantity"`

	Book       *BookDetails       `json:"book,omitempty"`
	Stationery *StationeryDetails `json:"stationery,omitempty"`

	Language         string `json:"language,omitempty"`
	Subject          string `json:"subject,omitempty"`
	Genre            string `json:"genre,omitempty"`
	ClassSuitability string `json:"class_suitability,omitempty"`

	Images []string `json:"images"` // first is primary
	Tags   []string `json:"tags"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Offer is one trade modality attached to a Stuff. Which price-like fields
// are set depends on OfferType; the rest stay nil.
type Offer struct {
	ID      string `json:"offer_id"`
	StuffID string `json:"stuff_id"`
	UserID  string `json:"user_id"`

	OfferType               string   `json:"offer_type"`
	Price                   *float64 `json:"price,omitempty"`
	RentalPricePerDay       *float64 `json:"rental_price_per_day,omitempty"`
	RentalPeriodDays        *int     `json:"rental_period_days,omitempty"`
	SecurityDeposit         *float64 `json:"security_deposit,omitempty"`
	ExchangeItemDescription string   `json:"exchange_item_description,omitempty"`
	ExchangeItemValue       *float64 `json:"exchange_item_value,omitempty"`

	AvailabilityStart string `json:"availability_start,omitempty"`
	AvailabilityEnd   string `json:"availability_end,omitempty"`
	QuantityAvailable int    `json:"quantity_available"`

	PickupAddress string   `json:"pickup_address,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	City          string   `json:"city,omitempty"`
	State         string   `json:"state,omitempty"`
	Pincode       string   `json:"pincode,omitempty"`

	VisibilityScope     string `json:"visibility_scope"`
	TermsConditions     string `json:"terms_conditions,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`

	IsActive  bool   `json:"is_active"`
	ExpiresAt string `json:"expires_at"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Message is immutable once sent except for the read flag.
type Message struct {
	ID                 string `json:"message_id" db:"id"`
	SenderID           string `json:"sender_id" db:"sender_id"`
	ReceiverID         string `json:"receiver_id" db:"receiver_id"`
	OfferID            string `json:"offer_id,omitempty" db:"offer_id"` // empty = direct message
	Subject            string `json:"subject,omitempty" db:"subject"`
	Text               string `json:"text" db:"text"`
	TradeRequestStatus string `json:"trade_request_status,omitempty" db:"trade_request_status"`
	IsRead             bool   `json:"is_read" db:"is_read"`
	SentAt             string `json:"sent_at" db:"sent_at"`
}

// UserSummary is the counterparty info shown on conversation lists.
type UserSummary struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// OfferContext ties a conversation to the listing it is about.
type OfferContext struct {
	OfferID    string `json:"offer_id"`
	StuffID    string `json:"stuff_id"`
	StuffTitle string `json:"stuff_title"`
}

// Conversation is a derived view over messages; never persisted.
type Conversation struct {
	OtherUser   UserSummary   `json:"other_user"`
	LastMessage Message       `json:"last_message"`
	Offer       *OfferContext `json:"offer,omitempty"`
	UnreadCount int           `json:"unread_count"`
}

// Notification types.
const (
	NotifyMessage = "MESSAGE"
)

type Notification struct {
	ID        string `json:"notification_id" db:"id"`
	UserID    string `json:"user_id" db:"user_id"`
	Type      string `json:"type" db:"type"`
	Title     string `json:"title" db:"title"`
	Body      string `json:"body" db:"body"`
	DataJSON  string `json:"data" db:"data_json"`
	IsRead    bool   `json:"is_read" db:"is_read"`
	CreatedAt string `json:"created_at" db:"created_at"`
}

// Review types.
const (
	ReviewUniversalStuff  = "UNIVERSAL_STUFF"
	ReviewThankYouMessage = "THANK_YOU_MESSAGE"
	ReviewUserRating      = "USER_RATING"
)

type Review struct {
	ID           string `json:"review_id" db:"id"`
	ReviewerID   string `json:"reviewer_id" db:"reviewer_id"`
	TargetUserID string `json:"target_user_id" db:"target_user_id"`
	StuffID      string `json:"stuff_id,omitempty" db:"stuff_id"`
	TradeID      string `json:"trade_id,omitempty" db:"trade_id"`
	Rating       int    `json:"rating" db:"rating"`
	Title        string `json:"title,omitempty" db:"title"`
	Message      string `json:"message" db:"message"`
	Type         string `json:"type" db:"type"`
	CreatedAt    string `json:"created_at" db:"created_at"`
}

// Trade statuses.
const (
	TradePending    = "PENDING"
	TradeAccepted   = "ACCEPTED"
	TradeRejected   = "REJECTED"
	TradeInProgress = "IN_PROGRESS"
	TradeCompleted  = "COMPLETED"
	TradeOverdue    = "OVERDUE"
	TradeCancelled  = "CANCELLED"
)

type Trade struct {
	ID         string `json:"trade_id" db:"id"`
	OfferID    string `json:"offer_id" db:"offer_id"`
	BorrowerID string `json:"borrower_id" db:"borrower_id"`
	LenderID   string `json:"lender_id" db:"lender_id"`
	Status     string `json:"status" db:"status"`

	AgreedPrice      *float64 `json:"agreed_price,omitempty" db:"agreed_price"`
	SecurityDeposit  *float64 `json:"security_deposit,omitempty" db:"security_deposit"`
	StartDate        string   `json:"start_date,omitempty" db:"start_date"`
	EndDate          string   `json:"end_date,omitempty" db:"end_date"`
	ActualReturnDate string   `json:"actual_return_date,omitempty" db:"actual_return_date"`
	LateFee          *float64 `json:"late_fee,omitempty" db:"late_fee"`

	BorrowerNotes  string `json:"borrower_notes,omitempty" db:"borrower_notes"`
	LenderNotes    string `json:"lender_notes,omitempty" db:"lender_notes"`
	PickupCode     string `json:"pickup_code,omitempty" db:"pickup_code"`
	ReturnCode     string `json:"return_code,omitempty" db:"return_code"`
	BorrowerRating *int   `json:"borrower_rating,omitempty" db:"borrower_rating"`
	LenderRating   *int   `json:"lender_rating,omitempty" db:"lender_rating"`

	CreatedAt string `json:"created_at" db:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty" db:"updated_at"`
}

// Request urgency levels and statuses.
const (
	UrgencyLow    = "LOW"
	UrgencyMedium = "MEDIUM"
	UrgencyHigh   = "HIGH"
	UrgencyUrgent = "URGENT"

	RequestOpen      = "OPEN"
	RequestMatched   = "MATCHED"
	RequestFulfilled = "FULFILLED"
	RequestClosed    = "CLOSED"
	RequestExpired   = "EXPIRED"
)

// Request is a "wanted" post: a student asking for an item nobody has listed.
type Request struct {
	ID          string `json:"request_id" db:"id"`
	UserID      string `json:"user_id" db:"user_id"`
	StuffType   string `json:"stuff_type" db:"stuff_type"`
	Title       string `json:"title,omitempty" db:"title"`
	Description string `json:"description" db:"description"`
	Subject     string `json:"subject,omitempty" db:"subject"`
	ClassYear   string `json:"class_year,omitempty" db:"class_year"`

	UrgencyLevel       string `json:"urgency_level" db:"urgency_level"`
	NeededByDate       string `json:"needed_by_date,omitempty" db:"needed_by_date"`
	RentalDurationDays *int   `json:"rental_duration_days,omitempty" db:"rental_duration_days"`

	MaxPrice        *float64 `json:"max_price,omitempty" db:"max_price"`
	MaxRentalPerDay *float64 `json:"max_rental_per_day,omitempty" db:"max_rental_per_day"`

	TargetSchoolCollegeID string   `json:"target_school_college_id,omitempty" db:"target_school_college_id"`
	Latitude              *float64 `json:"location_latitude,omitempty" db:"latitude"`
	Longitude             *float64 `json:"location_longitude,omitempty" db:"longitude"`
	SearchRadiusKM        float64  `json:"search_radius_km" db:"search_radius_km"`

	Status    string `json:"status" db:"status"`
	ExpiresAt string `json:"expires_at" db:"expires_at"`
	CreatedAt string `json:"created_at" db:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty" db:"updated_at"`
}

// Reminder types.
const (
	RemindReturnDue   = "RETURN_DUE"
	RemindPickupDue   = "PICKUP_DUE"
	RemindOfferExpiry = "OFFER_EXPIRY"
	RemindPaymentDue  = "PAYMENT_DUE"
	RemindCustom      = "CUSTOM"
)

type Reminder struct {
	ID          string `json:"reminder_id" db:"id"`
	UserID      string `json:"user_id" db:"user_id"`
	TradeID     string `json:"trade_id,omitempty" db:"trade_id"`
	Title       string `json:"title" db:"title"`
	Message     string `json:"message" db:"message"`
	DueDate     string `json:"due_date" db:"due_date"`
	Type        string `json:"type" db:"type"`
	IsSent      bool   `json:"is_sent" db:"is_sent"`
	IsDismissed bool   `json:"is_dismissed" db:"is_dismissed"`
	CreatedAt   string `json:"created_at" db:"created_at"`
}

type SchoolCollege struct {
	ID    string `json:"school_college_id" db:"id"`
	Name  string `json:"name" db:"name"`
	City  string `json:"city,omitempty" db:"city"`
	State string `json:"state,omitempty" db:"state"`
}
