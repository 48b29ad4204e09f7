package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bothellselect/select-client/enums"
	"github.com/bothellselect/select-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type recordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          string
}

type ClientTestSuite struct {
	suite.Suite
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
	server   *httptest.Server
	client   *Client
}

func (s *ClientTestSuite) SetupTest() {
	s.requests = nil
	s.routes = map[string]func(w http.ResponseWriter, r *http.Request){}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          string(body),
		})
		s.mu.Unlock()

		handler, ok := s.routes[r.Method+" "+r.URL.Path]
		if !ok {
			respond(w, http.StatusNotFound, `{"message":"Not found"}`)
			return
		}
		handler(w, r)
	}))
	s.client = New(Config{BaseURL: s.server.URL}).WithTokenSource(func(context.Context) (string, error) {
		return "tok-123", nil
	})
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (s *ClientTestSuite) route(key string, status int, body string) {
	s.routes[key] = func(w http.ResponseWriter, _ *http.Request) { respond(w, status, body) }
}

func (s *ClientTestSuite) TestLoginIsAnonymous() {
	s.route("POST /auth/login", http.StatusOK, `{"token":"jwt","parent":{"_id":"p-1","fullName":"Pat"}}`)

	resp, err := s.client.Login(context.Background(), "pat@example.com", "secret")
	s.Require().NoError(err)
	s.Equal("jwt", resp.Token)
	s.Equal("Pat", resp.Parent.FullName)

	s.Require().Len(s.requests, 1)
	s.Empty(s.requests[0].Authorization)
	s.JSONEq(`{"email":"pat@example.com","password":"secret"}`, s.requests[0].Body)
}

func (s *ClientTestSuite) TestLoginFailureMessage() {
	s.route("POST /auth/login", http.StatusBadRequest, `{"message":"Invalid email or password"}`)

	_, err := s.client.Login(context.Background(), "pat@example.com", "bad")

	var apiErr *Error
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusBadRequest, apiErr.StatusCode)
	s.Equal("Invalid email or password", apiErr.BackendMessage())
	s.False(errors.Is(err, ErrUnauthorized))
}

func (s *ClientTestSuite) TestUnauthorized() {
	s.route("GET /parent/p-1", http.StatusUnauthorized, `{"error":"jwt expired"}`)

	_, err := s.client.GetParent(context.Background(), "p-1")
	s.ErrorIs(err, ErrUnauthorized)

	var apiErr *Error
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("jwt expired", apiErr.Message)
}

func (s *ClientTestSuite) TestGetParentSendsBearer() {
	s.route("GET /parent/p-1", http.StatusOK, `{"_id":"p-1","fullName":"Pat","players":["k1"]}`)

	parent, err := s.client.GetParent(context.Background(), "p-1")
	s.Require().NoError(err)
	s.Equal([]string{"k1"}, parent.Players)
	s.Equal("Bearer tok-123", s.requests[0].Authorization)
}

func (s *ClientTestSuite) TestNoTokenNoHeader() {
	s.route("GET /notifications", http.StatusOK, `[]`)

	client := New(Config{BaseURL: s.server.URL}).WithTokenSource(func(context.Context) (string, error) { return "", nil })
	_, err := client.GetNotifications(context.Background())
	s.Require().NoError(err)
	s.Empty(s.requests[0].Authorization)
}

func (s *ClientTestSuite) TestTokenSourceError() {
	client := s.client.WithTokenSource(func(context.Context) (string, error) { return "", errors.New("store down") })
	_, err := client.GetNotifications(context.Background())
	s.Error(err)
	s.Empty(s.requests)
}

func (s *ClientTestSuite) TestListEnvelope() {
	s.route("GET /notifications", http.StatusOK, `{"data":[{"_id":"n1","title":"Tryouts"},{"_id":"n2","title":"Picture day"}]}`)

	notifications, err := s.client.GetNotifications(context.Background())
	s.Require().NoError(err)
	s.Require().Len(notifications, 2)
	s.Equal("Picture day", notifications[1].Title)
}

func (s *ClientTestSuite) TestListRejectsObject() {
	s.route("GET /forms", http.StatusOK, `{"ok":true}`)

	_, err := s.client.GetForms(context.Background())
	s.Error(err)
}

func (s *ClientTestSuite) TestPlayersNestedRoute() {
	s.route("GET /parent/p-1/players", http.StatusOK, `[{"_id":"k1","fullName":"Kid One"}]`)

	players, err := s.client.GetPlayersForParent(context.Background(), "p-1")
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Len(s.requests, 1)
}

func (s *ClientTestSuite) TestPlayersFallbackRoute() {
	s.route("GET /parent/p-1/players", http.StatusInternalServerError, `{"message":"boom"}`)
	s.route("GET /players", http.StatusOK, `[{"_id":"k2","fullName":"Kid Two"}]`)

	players, err := s.client.GetPlayersForParent(context.Background(), "p-1")
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("k2", players[0].ID)

	s.Require().Len(s.requests, 2)
	s.Equal("parentId=p-1", s.requests[1].Query)
}

func (s *ClientTestSuite) TestPlayersBothRoutesFail() {
	_, err := s.client.GetPlayersForParent(context.Background(), "p-1")
	var apiErr *Error
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusNotFound, apiErr.StatusCode)
	s.Len(s.requests, 2)
}

func (s *ClientTestSuite) TestSearchPlayers() {
	s.route("GET /players/search", http.StatusOK, `[]`)

	_, err := s.client.SearchPlayers(context.Background(), "jo smith")
	s.Require().NoError(err)
	s.Equal("q=jo+smith", s.requests[0].Query)
}

func (s *ClientTestSuite) TestCreateFormValidatesFirst() {
	_, err := s.client.CreateForm(context.Background(), &models.FormTemplate{Title: "Tryouts"})
	s.Error(err)
	s.Empty(s.requests)

	s.route("POST /forms", http.StatusCreated, `{"_id":"f1","title":"Tryouts"}`)
	created, err := s.client.CreateForm(context.Background(), &models.FormTemplate{
		Title:  "Tryouts",
		Fields: []models.FormField{{Name: "size", Label: "Shirt size", Type: enums.FieldTypeSelect, Options: []string{"S", "M"}}},
	})
	s.Require().NoError(err)
	s.Equal("f1", created.ID)
}

func (s *ClientTestSuite) TestDeleteNotification() {
	s.route("DELETE /notifications/n1", http.StatusNoContent, ``)
	s.NoError(s.client.DeleteNotification(context.Background(), "n1"))
}

func (s *ClientTestSuite) TestProcessPayment() {
	_, err := s.client.ProcessPayment(context.Background(), &models.PaymentRequest{Amount: 0})
	s.Error(err)
	s.Empty(s.requests)

	s.route("POST /payments/process", http.StatusOK, `{"paymentId":"pay-1","status":"paid"}`)
	result, err := s.client.ProcessPayment(context.Background(), &models.PaymentRequest{
		SourceID: "cnon:card-nonce-ok",
		Amount:   15000,
		Currency: "USD",
		ParentID: "p-1",
		Email:    "pat@example.com",
	})
	s.Require().NoError(err)
	s.Equal(enums.PaymentStatusPaid, result.Status)
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "api: HTTP 500", (&Error{StatusCode: 500}).Error())
	assert.Equal(t, "api: HTTP 400: bad", newError(400, []byte(`{"error":"bad"}`)).Error())
	require.Empty(t, newError(502, []byte(`<html>`)).Message)
}
