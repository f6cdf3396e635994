package services_test

import (
	"testing"

	"vidyarth/internal/domain"
	"vidyarth/internal/repos"
	"vidyarth/internal/services"
)

func TestReminderSweepFiresNotificationsOnce(t *testing.T) {
	db := testDB(t)
	notif := services.NewNotificationService(repos.NewNotificationRepo(db))
	svc := services.NewReminderService(repos.NewReminderRepo(db), notif)

	due, err := svc.Create("u-asha", services.ReminderInput{
		Title:   "Return Graph Theory",
		Message: "Due back to Ravi today",
		DueDate: "2026-01-01 00:00:00.000000000",
		Type:    domain.RemindReturnDue,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create("u-asha", services.ReminderInput{
		Title:   "Far future",
		Message: "Not yet",
		DueDate: "2099-01-01 00:00:00.000000000",
	}); err != nil {
		t.Fatal(err)
	}

	fired, err := svc.Sweep()
	if err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}

	list, err := notif.List("u-asha", false, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Type != domain.RemindReturnDue || list[0].Title != due.Title {
		t.Errorf("notifications = %+v", list)
	}

	// Already-sent reminders do not fire again.
	fired, err = svc.Sweep()
	if err != nil {
		t.Fatal(err)
	}
	if fired != 0 {
		t.Errorf("second sweep fired %d", fired)
	}
}

func TestReminderDismissAndListing(t *testing.T) {
	db := testDB(t)
	notif := services.NewNotificationService(repos.NewNotificationRepo(db))
	svc := services.NewReminderService(repos.NewReminderRepo(db), notif)

	m, err := svc.Create("u-asha", services.ReminderInput{
		Title: "Pickup", Message: "Collect calculator", DueDate: "2026-09-01 00:00:00.000000000",
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.Type != domain.RemindCustom {
		t.Errorf("default type = %s", m.Type)
	}

	// Another user cannot touch it.
	if err := svc.Dismiss("u-ravi", m.ID); err == nil {
		t.Error("foreign dismiss should fail")
	}
	if err := svc.Dismiss("u-asha", m.ID); err != nil {
		t.Fatal(err)
	}

	pending, err := svc.ListMine("u-asha", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("dismissed reminder still pending: %+v", pending)
	}
	all, err := svc.ListMine("u-asha", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("full list = %+v", all)
	}

	if _, err := svc.Create("u-asha", services.ReminderInput{Title: "", Message: "x", DueDate: "d"}); !domain.IsValidation(err) {
		t.Errorf("empty title: got %v", err)
	}
}

func TestNotificationMarking(t *testing.T) {
	db := testDB(t)
	notif := services.NewNotificationService(repos.NewNotificationRepo(db))

	for _, title := range []string{"a", "b", "c"} {
		if err := notif.Push("u-asha", domain.NotifyMessage, title, "body", ""); err != nil {
			t.Fatal(err)
		}
	}
	if err := notif.Push("u-ravi", domain.NotifyMessage, "other", "body", ""); err != nil {
		t.Fatal(err)
	}

	list, err := notif.List("u-asha", true, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("unread = %d", len(list))
	}

	// Marking is scoped to the owner: ravi's ids in the set are ignored.
	raviList, _ := notif.List("u-ravi", true, 10)
	n, err := notif.MarkRead("u-asha", []string{list[0].ID, raviList[0].ID})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("marked = %d, want 1", n)
	}

	if n, err = notif.MarkAllRead("u-asha"); err != nil || n != 2 {
		t.Errorf("mark all = %d, %v", n, err)
	}
	if c, _ := notif.UnreadCount("u-asha"); c != 0 {
		t.Errorf("unread count = %d", c)
	}
	if c, _ := notif.UnreadCount("u-ravi"); c != 1 {
		t.Errorf("ravi unread = %d", c)
	}
}

func TestFavoritesRoundTrip(t *testing.T) {
	db := testDB(t)
	st, _ := mkListing(t, db, "u-ravi", "Astronomy")
	svc := services.NewFavoriteService(repos.NewFavoriteRepo(db), repos.NewStuffRepo(db))

	if err := svc.Save("u-asha", st.ID); err != nil {
		t.Fatal(err)
	}
	// Saving twice stays a single row.
	if err := svc.Save("u-asha", st.ID); err != nil {
		t.Fatal(err)
	}

	favs, err := svc.List("u-asha")
	if err != nil {
		t.Fatal(err)
	}
	if len(favs) != 1 || favs[0].ID != st.ID {
		t.Errorf("favorites = %+v", favs)
	}

	if err := svc.Save("u-asha", "missing"); err == nil {
		t.Error("favoriting a missing listing should fail")
	}
	if err := svc.Unsave("u-asha", st.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Unsave("u-asha", st.ID); err == nil {
		t.Error("double unsave should report not found")
	}
}
