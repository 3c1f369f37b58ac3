package localizer

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/deltegui/pmadmin/core"
	"github.com/deltegui/pmadmin/cypher"
)

type Localizer map[string]string

func (loc Localizer) Get(key string) string {
	val, ok := loc[key]
	if !ok {
		return key
	}
	return val
}

type i18n map[string]Localizer

const FallbackLanguage string = "es"

var SupportedLanguages = []string{
	"es",
	"en",
}

const cookieKey string = "language"

// Store reads localization files from an fs.FS. Each file is a json object
// keyed by language: {"es": {"key": "value"}, "en": {...}}.
type Store struct {
	files     fs.FS
	sharedKey string
	errorsKey string
	cypher    core.Cypher
}

func NewStore(files fs.FS, sharedKey, errorsKey string, cypher core.Cypher) *Store {
	return &Store{files, sharedKey, errorsKey, cypher}
}

func (ls *Store) loadFile(file string) (i18n, error) {
	raw, err := fs.ReadFile(ls.files, file)
	if err != nil {
		return nil, fmt.Errorf("cannot read localization file '%s': %w", file, err)
	}
	var values i18n
	if err = json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("cannot decode localization file '%s': %w", file, err)
	}
	return values, nil
}

func (ls *Store) GetWithoutShared(key, language string) Localizer {
	file := fmt.Sprintf("%s.json", key)
	values, err := ls.loadFile(file)
	if err != nil {
		log.Println("[PMADMIN]", err)
		return Localizer{}
	}
	val, ok := values[language]
	if !ok {
		val, ok = values[FallbackLanguage]
		if !ok {
			log.Printf("[PMADMIN] Missing fallback language ('%s') localizations for key '%s'\n", FallbackLanguage, key)
			return Localizer{}
		}
	}
	return val
}

func (ls *Store) Get(key, language string) Localizer {
	loc := ls.GetWithoutShared(key, language)
	if ls.sharedKey == "" || key == ls.sharedKey {
		return loc
	}
	merged := Localizer{}
	mergeLocalizers(merged, ls.GetWithoutShared(ls.sharedKey, language))
	mergeLocalizers(merged, loc)
	return merged
}

func mergeLocalizers(dst, origin Localizer) {
	for key, val := range origin {
		dst[key] = val
	}
}

func (ls *Store) GetUsingRequest(key string, req *http.Request) Localizer {
	return ls.Get(key, ls.ReadCookie(req))
}

func (ls *Store) GetUsingRequestWithoutShared(key string, req *http.Request) Localizer {
	return ls.GetWithoutShared(key, ls.ReadCookie(req))
}

// GetLocalizedError looks err.Code up in the errors file.
func (ls *Store) GetLocalizedError(err core.UseCaseError, req *http.Request) (string, bool) {
	key := strconv.Itoa(int(err.Code))
	msg, ok := ls.GetUsingRequestWithoutShared(ls.errorsKey, req)[key]
	return msg, ok
}

func (ls *Store) CreateCookie(w http.ResponseWriter, language string) error {
	return CreateCookie(w, language, ls.cypher)
}

func (ls *Store) ReadCookie(req *http.Request) string {
	lang, err := ReadCookie(req, ls.cypher)
	if err != nil {
		return FallbackLanguage
	}
	return lang
}

// Supported returns language if it is supported, the fallback language otherwise.
func Supported(language string) string {
	for _, supported := range SupportedLanguages {
		if language == supported {
			return language
		}
	}
	return FallbackLanguage
}

func ReadCookie(req *http.Request, cy core.Cypher) (string, error) {
	cookie, err := req.Cookie(cookieKey)
	if err != nil {
		return FallbackLanguage, nil
	}
	lang, err := cypher.DecodeCookie(cy, cookie.Value)
	if err != nil {
		return "", fmt.Errorf("cannot read language cookie: %w", err)
	}
	return Supported(lang), nil
}

func CreateCookie(w http.ResponseWriter, language string, cy core.Cypher) error {
	lang := Supported(language)
	encoded, err := cypher.EncodeCookie(cy, lang)
	if err != nil {
		return fmt.Errorf("cannot create language cookie: %w", err)
	}
	age := core.OneDayDuration * 365
	http.SetCookie(w, &http.Cookie{
		Name:     cookieKey,
		Value:    encoded,
		Expires:  time.Now().Add(age),
		MaxAge:   int(age.Seconds()),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
	})
	return nil
}
