package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Muhsin-Gun/mobile-app/internal/store"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

func (s *Server) googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// failedRedirect sends the browser back to the frontend with auth=failed;
// the flow never surfaces error detail to the client.
func (s *Server) failedRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.cfg.FrontendURL+"/?auth=failed", http.StatusTemporaryRedirect)
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.cfg.GoogleClientID == "" {
		s.failedRedirect(w, r)
		return
	}

	var b [16]byte
	_, _ = rand.Read(b[:])
	state := hex.EncodeToString(b[:])

	// The state round-trips through a short-lived cookie.
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   int((5 * time.Minute).Seconds()),
		HttpOnly: true,
	})

	http.Redirect(w, r, s.googleOAuthConfig().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

type googleUserinfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		s.failedRedirect(w, r)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		s.failedRedirect(w, r)
		return
	}

	conf := s.googleOAuthConfig()
	tok, err := conf.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("google oauth exchange failed: %v", err)
		s.failedRedirect(w, r)
		return
	}

	resp, err := conf.Client(r.Context(), tok).Get(googleUserinfoURL)
	if err != nil {
		log.Printf("google userinfo fetch failed: %v", err)
		s.failedRedirect(w, r)
		return
	}
	defer resp.Body.Close()

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.ID == "" || info.Email == "" {
		s.failedRedirect(w, r)
		return
	}

	user, err := s.store.UpsertGoogleUser(r.Context(), store.GoogleProfile{
		GoogleID:  info.ID,
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: info.Picture,
	})
	if err != nil {
		log.Printf("google user upsert failed: %v", err)
		s.failedRedirect(w, r)
		return
	}

	token, err := s.tokens.issue(user.ID)
	if err != nil {
		s.failedRedirect(w, r)
		return
	}

	http.Redirect(w, r, s.cfg.FrontendURL+"/?auth=success&token="+token, http.StatusTemporaryRedirect)
}
