package controller

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	helper "trainingcenter_backend/internals/helpers"
)

func quoteApp() *fiber.App {
	app := fiber.New(fiber.Config{JSONEncoder: sonic.Marshal, JSONDecoder: sonic.Unmarshal})
	ctl := &TraineeController{Validator: helper.NewValidator()}
	app.Post("/trainees/quote", ctl.Quote)
	return app
}

type quoteBody struct {
	Success bool `json:"success"`
	Data    struct {
		Paid   json.Number         `json:"paid"`
		Errors map[string][]string `json:"errors"`
	} `json:"data"`
}

func postQuote(t *testing.T, body string) (int, quoteBody) {
	t.Helper()
	req := httptest.NewRequest("POST", "/trainees/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := quoteApp().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var out quoteBody
	if resp.StatusCode == fiber.StatusOK {
		dec := json.NewDecoder(resp.Body)
		dec.UseNumber()
		if err := dec.Decode(&out); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode, out
}

func TestQuoteWithoutProgram(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"empty form", `{}`, []string{"trainee_program_id"}},
		{"tranche only", `{"trainee_initial_tranche": 5000}`, []string{"trainee_program_id"}},
		{"negative discount", `{"trainee_discount": -10}`, []string{"trainee_program_id", "trainee_discount"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := postQuote(t, tt.body)
			if code != fiber.StatusOK {
				t.Fatalf("status = %d, want 200", code)
			}
			if !body.Success {
				t.Error("success = false")
			}
			for _, f := range tt.fields {
				if len(body.Data.Errors[f]) == 0 {
					t.Errorf("errors[%s] missing: %v", f, body.Data.Errors)
				}
			}
		})
	}
}

func TestQuoteComputesWithoutProgram(t *testing.T) {
	_, body := postQuote(t, `{"trainee_initial_tranche": 5000, "trainee_second_tranche": 1500}`)
	if got := body.Data.Paid.String(); got != "6500" {
		t.Errorf("paid = %s, want 6500", got)
	}
}

func TestQuoteRejectsMalformedBody(t *testing.T) {
	if code, _ := postQuote(t, `{"trainee_discount":`); code != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}
