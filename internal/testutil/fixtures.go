package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/wonderform"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("storyteller_%s", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(name string) *UserBuilder {
	b.username = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate registers the user via the API and returns it with an access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"username": b.username,
		"password": b.password,
	})

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	return &domain.User{ID: userID, Username: authResp.User.Username}, authResp.AccessToken
}

// EffectBuilder creates catalog effects
type EffectBuilder struct {
	effect domain.Effect
}

// NewEffectBuilder creates an effect with a unique name and no sphere ratings
func NewEffectBuilder() *EffectBuilder {
	return &EffectBuilder{effect: domain.Effect{
		Name: fmt.Sprintf("Effect %s", uuid.New().String()[:8]),
	}}
}

func (b *EffectBuilder) WithName(name string) *EffectBuilder {
	b.effect.Name = name
	return b
}

func (b *EffectBuilder) WithDescription(description string) *EffectBuilder {
	b.effect.Description = description
	return b
}

// WithSphere sets one sphere rating; invalid input fails at Build
func (b *EffectBuilder) WithSphere(s domain.Sphere, rating int) *EffectBuilder {
	_ = b.effect.SetSphere(s, rating)
	return b
}

func (b *EffectBuilder) WithSources(sources ...string) *EffectBuilder {
	b.effect.SetSources(sources)
	return b
}

// Build creates the effect in the database
func (b *EffectBuilder) Build(t *testing.T, db *gorm.DB) *domain.Effect {
	t.Helper()

	effect := b.effect
	effect.ID = uuid.New()
	if effect.Sources == nil {
		effect.SetSources(nil)
	}
	if err := effect.Validate(); err != nil {
		t.Fatalf("invalid effect fixture: %v", err)
	}
	if err := db.Create(&effect).Error; err != nil {
		t.Fatalf("failed to create effect: %v", err)
	}
	return &effect
}

// ResonanceBuilder creates resonance traits
type ResonanceBuilder struct {
	resonance domain.Resonance
}

func NewResonanceBuilder() *ResonanceBuilder {
	return &ResonanceBuilder{resonance: domain.Resonance{
		Name: fmt.Sprintf("Resonance %s", uuid.New().String()[:8]),
	}}
}

func (b *ResonanceBuilder) WithName(name string) *ResonanceBuilder {
	b.resonance.Name = name
	return b
}

func (b *ResonanceBuilder) WithDescription(description string) *ResonanceBuilder {
	b.resonance.Description = description
	return b
}

// Build creates the resonance in the database
func (b *ResonanceBuilder) Build(t *testing.T, db *gorm.DB) *domain.Resonance {
	t.Helper()

	resonance := b.resonance
	resonance.ID = uuid.New()
	if err := db.Create(&resonance).Error; err != nil {
		t.Fatalf("failed to create resonance: %v", err)
	}
	return &resonance
}

// CharmInput returns a submission for a rank 1 charm using one existing
// effect and one resonance rated 1
func CharmInput(name string, effect *domain.Effect, resonance *domain.Resonance) wonderform.Input {
	arete := 1
	return wonderform.Input{
		WonderType: string(domain.WonderKindCharm),
		Name:       name,
		Rank:       1,
		Arete:      &arete,
		Resonance: []wonderform.ResonanceInput{
			{Resonance: resonance.ID.String(), Rating: 1},
		},
		Effects: []wonderform.EffectInput{
			{Mode: wonderform.ModeSelect, Effect: effect.ID.String()},
		},
	}
}

// CreateAuthenticatedRequest creates an HTTP request with a JSON body and auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// CreateFormRequest creates a form-urlencoded HTTP request with an auth token
func CreateFormRequest(t *testing.T, method, target string, values url.Values, token string) *http.Request {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, target, strings.NewReader(values.Encode()))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
