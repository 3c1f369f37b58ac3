package csrf

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/deltegui/pmadmin/core"
	"github.com/deltegui/pmadmin/cypher"
	"github.com/google/uuid"
)

const (
	HeaderName    string = "X-Csrf-Token"
	FormFieldName string = "csrf_token"

	separator string = "//"
)

var (
	ErrMissingToken   = errors.New("csrf token not found")
	ErrMalformedToken = errors.New("malformed csrf token")
	ErrExpiredToken   = errors.New("expired csrf token")
)

// Csrf issues encrypted tokens made of a random nonce and the issue time.
// A token is accepted until expires has elapsed since it was issued.
type Csrf struct {
	cypher  core.Cypher
	expires time.Duration
	now     func() time.Time
}

func New(expires time.Duration, cy core.Cypher) *Csrf {
	return &Csrf{
		cypher:  cy,
		expires: expires,
		now:     time.Now,
	}
}

func (csrf *Csrf) Generate() (string, error) {
	raw := fmt.Sprintf("%s%s%d", uuid.NewString(), separator, csrf.now().Unix())
	token, err := cypher.EncodeCookie(csrf.cypher, raw)
	if err != nil {
		return "", fmt.Errorf("cannot encrypt csrf token: %w", err)
	}
	return token, nil
}

func (csrf *Csrf) Check(token string) error {
	raw, err := cypher.DecodeCookie(csrf.cypher, token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	nonce, unixTime, found := strings.Cut(raw, separator)
	if !found {
		return ErrMalformedToken
	}
	if _, err := uuid.Parse(nonce); err != nil {
		return fmt.Errorf("%w: bad nonce: %w", ErrMalformedToken, err)
	}
	seconds, err := strconv.ParseInt(unixTime, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: unix time is not int64", ErrMalformedToken)
	}
	issued := time.Unix(seconds, 0)
	if issued.Add(csrf.expires).Before(csrf.now()) {
		return ErrExpiredToken
	}
	return nil
}

// CheckRequest reads the token from the header, falling back to the form value.
func (csrf *Csrf) CheckRequest(req *http.Request) error {
	token := req.Header.Get(HeaderName)
	if len(token) == 0 {
		token = req.FormValue(FormFieldName)
	}
	if len(token) == 0 {
		log.Printf("[CSRF] token not found in header %s nor form field %s\n", HeaderName, FormFieldName)
		return ErrMissingToken
	}
	return csrf.Check(token)
}
