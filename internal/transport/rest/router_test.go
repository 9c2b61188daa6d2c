package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"stormboard/internal/model"
	"stormboard/internal/repository/memory"
	"stormboard/internal/service"
	"stormboard/internal/transport/ws"
)

func newTestServer() *httptest.Server {
	store := memory.New()
	authSvc := service.NewAuthService("facilitator", "hunter2", "test-secret", store.Sessions(), store.CoAdmins(), store.Participants())
	container := &Container{
		AuthService:        authSvc,
		SessionService:     service.NewSessionService(store.Sessions(), store.Rounds(), store.Votes(), store.Participants(), nil, nil, authSvc),
		FolderService:      service.NewFolderService(store.Folders(), store.Sessions()),
		ParticipantService: service.NewParticipantService(store.Participants(), store.Sessions()),
		CoAdminService:     service.NewCoAdminService(store.CoAdmins(), authSvc),
		PostItService:      service.NewPostItService(store.PostIts(), store.Clusters(), authSvc),
		ClusterService:     service.NewClusterService(store.Clusters(), store.PostIts(), authSvc),
		VotingService:      service.NewVotingService(store.Rounds(), store.Votes(), store.Participants(), nil, authSvc),
		WSHub:              ws.NewHub(),
	}
	return httptest.NewServer(NewRouter(container))
}

func doJSON(t *testing.T, method, url, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

func login(t *testing.T, baseURL string) string {
	t.Helper()
	var resp model.LoginResponse
	r := doJSON(t, "POST", baseURL+"/v1/auth/login", "", map[string]string{
		"username": "facilitator",
		"password": "hunter2",
	}, &resp)
	if r.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", r.StatusCode)
	}
	return resp.Token
}

func TestHealth(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestLoginEndpoint(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	token := login(t, srv.URL)
	if token == "" {
		t.Fatal("empty token")
	}

	r := doJSON(t, "POST", srv.URL+"/v1/auth/login", "", map[string]string{
		"username": "facilitator",
		"password": "wrong",
	}, nil)
	if r.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", r.StatusCode)
	}
}

func TestOwnerRoutesRequireAuth(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	r := doJSON(t, "POST", srv.URL+"/v1/sessions", "", map[string]string{"question": "q"}, nil)
	if r.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create status = %d, want 401", r.StatusCode)
	}
}

func TestSessionWorkflowOverHTTP(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()
	token := login(t, srv.URL)

	// Create a session.
	var session model.Session
	r := doJSON(t, "POST", srv.URL+"/v1/sessions", token, map[string]string{
		"question": "How might we reduce meeting load?",
	}, &session)
	if r.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", r.StatusCode)
	}
	if session.ShortCode == "" {
		t.Fatal("session missing short code")
	}

	// Public lookup by short code includes the participant count.
	var byCode struct {
		Session          model.Session `json:"session"`
		ParticipantCount int           `json:"participantCount"`
	}
	r = doJSON(t, "GET", srv.URL+"/v1/sessions/code/"+session.ShortCode, "", nil, &byCode)
	if r.StatusCode != http.StatusOK || byCode.Session.ID != session.ID {
		t.Fatalf("lookup status = %d, session = %+v", r.StatusCode, byCode.Session)
	}

	// A participant joins anonymously.
	var participant model.Participant
	r = doJSON(t, "POST", srv.URL+"/v1/sessions/"+session.ID+"/participants", "", map[string]string{
		"displayToken": "tok-1",
	}, &participant)
	if r.StatusCode != http.StatusOK {
		t.Fatalf("join status = %d", r.StatusCode)
	}

	// The participant adds a post-it during collect.
	req, _ := http.NewRequest("POST", srv.URL+"/v1/sessions/"+session.ID+"/postits", bytes.NewBufferString(`{"text":"fewer standing invites"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Participant-Token", "tok-1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post-it: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("post-it status = %d", resp.StatusCode)
	}

	// Advance to organize; the participant is now locked out of creating.
	r = doJSON(t, "POST", srv.URL+"/v1/sessions/"+session.ID+"/phase/advance", token, nil, nil)
	if r.StatusCode != http.StatusOK {
		t.Fatalf("advance status = %d", r.StatusCode)
	}

	req, _ = http.NewRequest("POST", srv.URL+"/v1/sessions/"+session.ID+"/postits", bytes.NewBufferString(`{"text":"too late"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Participant-Token", "tok-1")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("late post-it: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("late post-it status = %d, want 409", resp.StatusCode)
	}
}

func TestVotingOverHTTP(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()
	token := login(t, srv.URL)

	var session model.Session
	doJSON(t, "POST", srv.URL+"/v1/sessions", token, map[string]string{"question": "q"}, &session)

	var participant model.Participant
	doJSON(t, "POST", srv.URL+"/v1/sessions/"+session.ID+"/participants", "", map[string]string{"displayToken": "tok-1"}, &participant)

	var postIt model.PostIt
	r := doJSON(t, "POST", srv.URL+"/v1/sessions/"+session.ID+"/postits", token, map[string]string{"text": "idea"}, &postIt)
	if r.StatusCode != http.StatusCreated {
		t.Fatalf("post-it status = %d", r.StatusCode)
	}

	// collect -> organize -> vote
	doJSON(t, "POST", srv.URL+"/v1/sessions/"+session.ID+"/phase/advance", token, nil, nil)
	doJSON(t, "POST", srv.URL+"/v1/sessions/"+session.ID+"/phase/advance", token, nil, nil)

	var round model.VotingRound
	r = doJSON(t, "POST", srv.URL+"/v1/sessions/"+session.ID+"/rounds", token, map[string]interface{}{
		"mode":   "dot_voting",
		"config": map[string]int{"totalPoints": 5},
	}, &round)
	if r.StatusCode != http.StatusCreated || round.RoundNumber != 1 {
		t.Fatalf("round status = %d, round = %+v", r.StatusCode, round)
	}

	// Submit a ballot with the participant token header.
	body := fmt.Sprintf(`{"dotVotes":[{"postItId":%q,"points":3}]}`, postIt.ID)
	req, _ := http.NewRequest("POST", srv.URL+"/v1/rounds/"+round.ID+"/votes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Participant-Token", "tok-1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status = %d", resp.StatusCode)
	}

	var results struct {
		Mode    model.VoteMode        `json:"mode"`
		Results []model.DotVoteResult `json:"results"`
	}
	r = doJSON(t, "GET", srv.URL+"/v1/rounds/"+round.ID+"/results", "", nil, &results)
	if r.StatusCode != http.StatusOK {
		t.Fatalf("results status = %d", r.StatusCode)
	}
	if len(results.Results) != 1 || results.Results[0].Total != 3 {
		t.Fatalf("results = %+v", results.Results)
	}

	var progress model.VotingProgress
	doJSON(t, "GET", srv.URL+"/v1/rounds/"+round.ID+"/progress", "", nil, &progress)
	if progress.Total != 1 || progress.Voted != 1 {
		t.Fatalf("progress = %+v", progress)
	}
}
