package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"vidyarth/internal/auth"
	"vidyarth/internal/http/handlers"
	"vidyarth/internal/repos"
	"vidyarth/internal/services"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	authSvc := services.NewAuthService(repos.NewUserRepo(db), auth.NewJWTService("test-secret"))
	app := fiber.New()
	handlers.Register(app, handlers.NewDeps(db, authSvc), authSvc)
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "not found"})
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("bad json %q: %v", raw, err)
		}
	}
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	code, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": "Passw0rd!",
	})
	if code != 200 {
		t.Fatalf("login %s: %d %v", email, code, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("no token in %v", body)
	}
	return token
}

func TestAuthAPIFlow(t *testing.T) {
	app := newTestApp(t)

	code, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "asha@vidyarth.test", "password": "nope",
	})
	if code != 401 || body["success"] != false {
		t.Fatalf("bad creds: %d %v", code, body)
	}

	token := login(t, app, "asha@vidyarth.test")

	code, body = doJSON(t, app, http.MethodGet, "/api/v1/me", token, nil)
	if code != 200 {
		t.Fatalf("me: %d %v", code, body)
	}
	user := body["user"].(map[string]any)
	if user["user_id"] != "u-asha" {
		t.Errorf("me user = %v", user)
	}

	if code, _ = doJSON(t, app, http.MethodGet, "/api/v1/me", "", nil); code != 401 {
		t.Errorf("unauthenticated me: %d", code)
	}
	if code, _ = doJSON(t, app, http.MethodGet, "/api/v1/me", "bogus-token", nil); code != 401 {
		t.Errorf("bogus token me: %d", code)
	}

	code, body = doJSON(t, app, http.MethodGet, "/api/v1/school-colleges", "", nil)
	if code != 200 {
		t.Fatalf("schools: %d", code)
	}
	if len(body["school_colleges"].([]any)) == 0 {
		t.Error("no schools seeded")
	}
}

func TestListingAPIEnvelope(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "asha@vidyarth.test")

	payload := map[string]any{
		"stuff": map[string]any{
			"type": "BOOK", "title": "Algorithms", "condition": "GOOD",
			"original_price": 600,
			"book":           map[string]any{"author": "CLRS"},
			"images":         []string{"https://img/a.jpg"},
			"tags":           []string{"CS"},
		},
		"offer": map[string]any{"offer_type": "SELL", "price": 350},
	}
	code, body := doJSON(t, app, http.MethodPost, "/api/v1/stuffs", token, payload)
	if code != 201 || body["success"] != true {
		t.Fatalf("create: %d %v", code, body)
	}
	stuff := body["stuff"].(map[string]any)
	stuffID := stuff["stuff_id"].(string)

	// Validation failures use the uniform error envelope and name the field.
	bad := map[string]any{
		"stuff": payload["stuff"],
		"offer": map[string]any{"offer_type": "SELL"},
	}
	code, body = doJSON(t, app, http.MethodPost, "/api/v1/stuffs", token, bad)
	if code != 400 || body["success"] != false {
		t.Fatalf("bad create: %d %v", code, body)
	}
	if msg, _ := body["error"].(string); msg == "" || !bytes.Contains([]byte(msg), []byte("price")) {
		t.Errorf("error = %v", body["error"])
	}

	// Public read, no auth needed.
	code, body = doJSON(t, app, http.MethodGet, "/api/v1/stuffs/"+stuffID, "", nil)
	if code != 200 {
		t.Fatalf("get: %d %v", code, body)
	}

	// Only the owner deletes.
	other := login(t, app, "ravi@vidyarth.test")
	if code, _ = doJSON(t, app, http.MethodDelete, "/api/v1/stuffs/"+stuffID, other, nil); code != 403 {
		t.Errorf("foreign delete: %d", code)
	}
	if code, _ = doJSON(t, app, http.MethodDelete, "/api/v1/stuffs/"+stuffID, token, nil); code != 200 {
		t.Errorf("owner delete: %d", code)
	}
	if code, _ = doJSON(t, app, http.MethodGet, "/api/v1/stuffs/"+stuffID, "", nil); code != 404 {
		t.Errorf("deleted listing get: %d", code)
	}
}

func TestMessagingAPIFlow(t *testing.T) {
	app := newTestApp(t)
	asha := login(t, app, "asha@vidyarth.test")
	ravi := login(t, app, "ravi@vidyarth.test")

	// Ravi lists, Asha writes on the listing's offer.
	code, body := doJSON(t, app, http.MethodPost, "/api/v1/stuffs", ravi, map[string]any{
		"stuff": map[string]any{
			"type": "BOOK", "title": "Compilers", "condition": "FAIR",
			"book": map[string]any{"author": "Aho"},
		},
		"offer": map[string]any{"offer_type": "SELL", "price": 400},
	})
	if code != 201 {
		t.Fatalf("listing: %d %v", code, body)
	}
	offerID := body["offer"].(map[string]any)["offer_id"].(string)

	code, body = doJSON(t, app, http.MethodPost, "/api/v1/messages", asha, map[string]any{
		"receiver_id": "u-ravi", "offer_id": offerID, "text": "is this still available?",
	})
	if code != 201 {
		t.Fatalf("send: %d %v", code, body)
	}

	code, body = doJSON(t, app, http.MethodGet, "/api/v1/conversations", ravi, nil)
	if code != 200 {
		t.Fatalf("conversations: %d %v", code, body)
	}
	convs := body["conversations"].([]any)
	if len(convs) != 1 {
		t.Fatalf("conversations = %v", convs)
	}
	conv := convs[0].(map[string]any)
	if conv["unread_count"].(float64) != 1 {
		t.Errorf("unread = %v", conv["unread_count"])
	}
	if conv["offer"].(map[string]any)["stuff_title"] != "Compilers" {
		t.Errorf("offer context = %v", conv["offer"])
	}

	// Reading the thread clears the unread badge.
	code, _ = doJSON(t, app, http.MethodGet, "/api/v1/messages?offerId="+offerID+"&otherUserId=u-asha", ravi, nil)
	if code != 200 {
		t.Fatalf("thread: %d", code)
	}
	_, body = doJSON(t, app, http.MethodGet, "/api/v1/conversations", ravi, nil)
	conv = body["conversations"].([]any)[0].(map[string]any)
	if conv["unread_count"].(float64) != 0 {
		t.Errorf("unread after read = %v", conv["unread_count"])
	}

	// The receiver got a notification for the message.
	code, body = doJSON(t, app, http.MethodGet, "/api/v1/notifications", ravi, nil)
	if code != 200 || body["unread_count"].(float64) != 1 {
		t.Errorf("notifications: %d %v", code, body)
	}
}

func TestAdminRoutesAreGuarded(t *testing.T) {
	app := newTestApp(t)
	user := login(t, app, "asha@vidyarth.test")
	admin := login(t, app, "admin@vidyarth.test")

	if code, _ := doJSON(t, app, http.MethodPost, "/api/v1/admin/reminders/sweep", user, nil); code != 403 {
		t.Errorf("user sweep: %d", code)
	}
	if code, _ := doJSON(t, app, http.MethodPost, "/api/v1/admin/reminders/sweep", "", nil); code != 401 {
		t.Errorf("anonymous sweep: %d", code)
	}
	code, body := doJSON(t, app, http.MethodPost, "/api/v1/admin/reminders/sweep", admin, nil)
	if code != 200 || body["success"] != true {
		t.Errorf("admin sweep: %d %v", code, body)
	}
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	app := newTestApp(t)
	code, body := doJSON(t, app, http.MethodGet, "/nothing-here", "", nil)
	if code != 404 || body["success"] != false {
		t.Errorf("404 fallback: %d %v", code, body)
	}
}
