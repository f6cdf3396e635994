package handlers

import (
	"vidyarth/internal/repos"
	"vidyarth/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler         *AuthHandler
	ListingHandler      *ListingHandler
	BrowseHandler       *BrowseHandler
	MessageHandler      *MessageHandler
	NotificationHandler *NotificationHandler
	FavoriteHandler     *FavoriteHandler
	ReviewHandler       *ReviewHandler
	TradeHandler        *TradeHandler
	RequestHandler      *RequestHandler
	ReminderHandler     *ReminderHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	userRepo := repos.NewUserRepo(db)
	stuffRepo := repos.NewStuffRepo(db)
	offerRepo := repos.NewOfferRepo(db)
	msgRepo := repos.NewMessageRepo(db)
	notifRepo := repos.NewNotificationRepo(db)
	favRepo := repos.NewFavoriteRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	tradeRepo := repos.NewTradeRepo(db)
	reqRepo := repos.NewRequestRepo(db)
	remRepo := repos.NewReminderRepo(db)
	browseRepo := repos.NewBrowseRepo(db)

	notifSvc := services.NewNotificationService(notifRepo)
	listingSvc := services.NewListingService(stuffRepo, offerRepo)
	messagingSvc := services.NewMessagingService(msgRepo, offerRepo, userRepo, notifSvc)
	favSvc := services.NewFavoriteService(favRepo, stuffRepo)
	reviewSvc := services.NewReviewService(reviewRepo, userRepo, stuffRepo)
	tradeSvc := services.NewTradeService(tradeRepo, offerRepo)
	reqSvc := services.NewRequestService(reqRepo)
	remSvc := services.NewReminderService(remRepo, notifSvc)
	browseSvc := services.NewBrowseService(browseRepo)

	return &Deps{
		AuthHandler:         &AuthHandler{Auth: auth},
		ListingHandler:      &ListingHandler{Listings: listingSvc},
		BrowseHandler:       &BrowseHandler{Browse: browseSvc},
		MessageHandler:      &MessageHandler{Messaging: messagingSvc},
		NotificationHandler: &NotificationHandler{Notify: notifSvc},
		FavoriteHandler:     &FavoriteHandler{Fav: favSvc},
		ReviewHandler:       &ReviewHandler{Reviews: reviewSvc},
		TradeHandler:        &TradeHandler{Trades: tradeSvc},
		RequestHandler:      &RequestHandler{Requests: reqSvc},
		ReminderHandler:     &ReminderHandler{Reminders: remSvc},
	}
}
