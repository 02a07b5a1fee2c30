//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/config"
	"github.com/finledger/backend/internal/infra/dependency"
	"github.com/finledger/backend/internal/integration/persistence/model"
	"github.com/finledger/backend/test/integration/mock"
)

const (
	testServerPort = 18181
	testJWTSecret  = "integration-test-secret"
	testPassword   = "Sup3rSecret!"
)

var serverOnce sync.Once

// startServer boots the API once for the whole suite, wired against the
// shared in-memory database and miniredis.
func startServer() {
	serverOnce.Do(func() {
		os.Setenv("ENV", "test")
		os.Setenv("JWT_SECRET", testJWTSecret)
		os.Setenv("RESEND_API_KEY", "")
		os.Setenv("REMINDER_WORKER_ENABLED", "false")

		cfg := config.Load()
		injector := dependency.NewInjector(cfg, mock.NewDb().DbConn, mock.NewRedis())
		engine := injector.Router.Setup(cfg.Server.Environment)

		go func() {
			if err := http.ListenAndServe(fmt.Sprintf(":%d", testServerPort), engine); err != nil {
				panic(err)
			}
		}()

		waitForServer()
	})
}

func waitForServer() {
	client := &http.Client{Timeout: time.Second}
	for i := 0; i < 50; i++ {
		resp, err := client.Get(baseURL() + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	panic("integration server did not become ready")
}

func baseURL() string {
	return fmt.Sprintf("http://localhost:%d", testServerPort)
}

type apiResponse struct {
	status int
	body   map[string]interface{}
	raw    string
}

// testContext carries per-scenario state: the logged-in user, fixture IDs
// referenced by {{placeholders}} and the last HTTP response.
type testContext struct {
	client   *http.Client
	response apiResponse

	accessToken string
	userID      uuid.UUID
	categoryID  uuid.UUID
	cardID      uuid.UUID
	entryID     string
	statementID string
}

func (tc *testContext) reset() {
	tc.response = apiResponse{}
	tc.accessToken = ""
	tc.userID = uuid.Nil
	tc.categoryID = uuid.Nil
	tc.cardID = uuid.Nil
	tc.entryID = ""
	tc.statementID = ""
}

// InitializeScenario wires the step definitions and resets shared state
// before every scenario.
func InitializeScenario(sc *godog.ScenarioContext) {
	tc := &testContext{client: &http.Client{Timeout: 10 * time.Second}}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		startServer()
		if err := mock.NewDb().ClearDb(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(mock.NewRedis()); err != nil {
			return ctx, err
		}
		tc.reset()

		return ctx, nil
	})

	sc.Step(`^the server is running$`, tc.theServerIsRunning)
	sc.Step(`^a registered user is logged in$`, tc.aRegisteredUserIsLoggedIn)
	sc.Step(`^no request token is set$`, tc.noRequestTokenIsSet)
	sc.Step(`^a "([^"]*)" category named "([^"]*)" exists$`, tc.aCategoryExists)
	sc.Step(`^a credit card "([^"]*)" closing on day (\d+) and due on day (\d+) exists$`, tc.aCreditCardExists)
	sc.Step(`^a statement for the card exists for (\d+)/(\d+) totalling "([^"]*)"$`, tc.aStatementExists)
	sc.Step(`^I send a (GET|POST|PATCH|DELETE) request to "([^"]*)"$`, tc.iSendARequestTo)
	sc.Step(`^I send a (GET|POST|PATCH|DELETE) request to "([^"]*)" with body:$`, tc.iSendARequestWithBody)
	sc.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	sc.Step(`^the response field "([^"]*)" should exist$`, tc.theResponseFieldShouldExist)
	sc.Step(`^the response list "([^"]*)" should have (\d+) items$`, tc.theResponseListShouldHaveItems)
	sc.Step(`^the "([^"]*)" table should have (\d+) rows$`, tc.theTableShouldHaveRows)
}

func (tc *testContext) theServerIsRunning() error {
	resp, err := tc.client.Get(baseURL() + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

func (tc *testContext) aRegisteredUserIsLoggedIn() error {
	body := fmt.Sprintf(`{"email": "ana@example.com", "name": "Ana", "password": %q}`, testPassword)
	if err := tc.execute(http.MethodPost, "/api/v1/auth/register", body); err != nil {
		return err
	}
	if tc.response.status != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d: %s", tc.response.status, tc.response.raw)
	}

	token, _ := tc.response.body["access_token"].(string)
	if token == "" {
		return fmt.Errorf("registration returned no access token")
	}
	tc.accessToken = token

	user, ok := tc.response.body["user"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("registration returned no user object")
	}
	id, _ := user["id"].(string)
	userID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("registration returned invalid user id %q: %w", id, err)
	}
	tc.userID = userID

	return nil
}

func (tc *testContext) noRequestTokenIsSet() error {
	tc.accessToken = ""
	return nil
}

func (tc *testContext) aCategoryExists(kind, name string) error {
	now := time.Now().UTC()
	category := &model.CategoryModel{
		ID:        uuid.New(),
		UserID:    tc.userID,
		Name:      name,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := mock.NewDb().DbConn.Create(category).Error; err != nil {
		return err
	}
	tc.categoryID = category.ID

	return nil
}

func (tc *testContext) aCreditCardExists(name string, closingDay, dueDay int) error {
	now := time.Now().UTC()
	card := &model.CreditCardModel{
		ID:          uuid.New(),
		UserID:      tc.userID,
		Name:        name,
		ClosingDay:  closingDay,
		DueDay:      dueDay,
		CreditLimit: decimal.NewFromInt(5000),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := mock.NewDb().DbConn.Create(card).Error; err != nil {
		return err
	}
	tc.cardID = card.ID

	return nil
}

func (tc *testContext) aStatementExists(month, year int, total string) error {
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return fmt.Errorf("invalid statement total %q: %w", total, err)
	}

	now := time.Now().UTC()
	statement := &model.StatementModel{
		ID:           uuid.New(),
		UserID:       tc.userID,
		CreditCardID: tc.cardID,
		Month:        month,
		Year:         year,
		TotalAmount:  amount,
		DueDate:      time.Date(year, time.Month(month), 5, 0, 0, 0, 0, time.UTC),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := mock.NewDb().DbConn.Create(statement).Error; err != nil {
		return err
	}
	tc.statementID = statement.ID.String()

	return nil
}

// expand replaces {{placeholders}} with IDs captured earlier in the scenario.
func (tc *testContext) expand(s string) string {
	return strings.NewReplacer(
		"{{user_id}}", tc.userID.String(),
		"{{category_id}}", tc.categoryID.String(),
		"{{card_id}}", tc.cardID.String(),
		"{{entry_id}}", tc.entryID,
		"{{statement_id}}", tc.statementID,
	).Replace(s)
}

func (tc *testContext) iSendARequestTo(method, path string) error {
	return tc.execute(method, path, "")
}

func (tc *testContext) iSendARequestWithBody(method, path string, body *godog.DocString) error {
	return tc.execute(method, path, body.Content)
}

func (tc *testContext) execute(method, path, body string) error {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(tc.expand(body))
	}

	req, err := http.NewRequest(method, baseURL()+tc.expand(path), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	tc.response = apiResponse{status: resp.StatusCode, raw: string(raw)}
	if len(raw) > 0 {
		decoded := map[string]interface{}{}
		if err := json.Unmarshal(raw, &decoded); err == nil {
			tc.response.body = decoded
		}
	}
	tc.captureIDs()

	return nil
}

// captureIDs remembers the first entry or statement ID of the last response
// so later steps can reference them through {{entry_id}}/{{statement_id}}.
func (tc *testContext) captureIDs() {
	if tc.response.body == nil {
		return
	}
	if entries, ok := tc.response.body["entries"].([]interface{}); ok && len(entries) > 0 {
		if first, ok := entries[0].(map[string]interface{}); ok {
			if id, ok := first["id"].(string); ok {
				tc.entryID = id
			}
		}
	}
	if statements, ok := tc.response.body["statements"].([]interface{}); ok && len(statements) > 0 {
		if first, ok := statements[0].(map[string]interface{}); ok {
			if id, ok := first["id"].(string); ok {
				tc.statementID = id
			}
		}
	}
}

func (tc *testContext) theResponseStatusShouldBe(expected int) error {
	if tc.response.status != expected {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expected, tc.response.status, tc.response.raw)
	}

	return nil
}

// lookupField resolves a dotted path such as "user.email" or
// "entries.0.status" against the decoded response body.
func (tc *testContext) lookupField(path string) (interface{}, bool) {
	var current interface{} = tc.response.body
	for _, part := range strings.Split(path, ".") {
		switch value := current.(type) {
		case map[string]interface{}:
			next, ok := value[part]
			if !ok {
				return nil, false
			}
			current = next
		case []interface{}:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(value) {
				return nil, false
			}
			current = value[index]
		default:
			return nil, false
		}
	}

	return current, true
}

func (tc *testContext) theResponseFieldShouldBe(field, expected string) error {
	value, ok := tc.lookupField(field)
	if !ok {
		return fmt.Errorf("field %q not found in response: %s", field, tc.response.raw)
	}

	got := fmt.Sprintf("%v", value)
	if got != expected {
		return fmt.Errorf("expected field %q to be %q, got %q", field, expected, got)
	}

	return nil
}

func (tc *testContext) theResponseFieldShouldExist(field string) error {
	if _, ok := tc.lookupField(field); !ok {
		return fmt.Errorf("field %q not found in response: %s", field, tc.response.raw)
	}

	return nil
}

func (tc *testContext) theResponseListShouldHaveItems(field string, expected int) error {
	value, ok := tc.lookupField(field)
	if !ok {
		return fmt.Errorf("field %q not found in response: %s", field, tc.response.raw)
	}

	list, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("field %q is not a list", field)
	}
	if len(list) != expected {
		return fmt.Errorf("expected list %q to have %d items, got %d", field, expected, len(list))
	}

	return nil
}

func (tc *testContext) theTableShouldHaveRows(table string, expected int) error {
	dest := mock.GetModel(table)
	if dest == nil {
		return fmt.Errorf("unknown table %q", table)
	}

	var count int64
	if err := mock.NewDb().DbConn.Model(dest).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected table %q to have %d rows, got %d", table, expected, count)
	}

	return nil
}
