// internal/finder/params/params.go
package params

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"activity-finder/internal/models"
)

// Parse normalizes raw query values into SearchParameters. List-valued
// parameters arrive comma-joined; empty tokens are dropped.
func Parse(values url.Values) models.SearchParameters {
	page := 0
	if raw := values.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}

	return models.SearchParameters{
		Keywords:     values.Get("keywords"),
		Ages:         splitList(values.Get("ages")),
		Days:         splitList(values.Get("days")),
		Times:        splitList(values.Get("times")),
		Categories:   splitList(values.Get("categories")),
		Locations:    splitList(values.Get("locations")),
		ProgramTypes: splitList(values.Get("program_types")),
		Exclude:      splitList(values.Get("exclude")),
		Sort:         values.Get("sort"),
		Page:         page,
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// cacheRecord is the parameter subset hashed into the response cache key.
// Field order matters, the key is the md5 of this record's JSON encoding.
type cacheRecord struct {
	Location string `json:"location"`
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
	Page     string `json:"page"`
	Day      string `json:"day"`
	Age      string `json:"age"`
	Sort     string `json:"sort"`
}

// CacheKey derives the response cache key from the filter parameters only.
// Request identity (IP, user agent) is deliberately left out so identical
// searches from different clients share a cache entry.
func CacheKey(values url.Values) string {
	rec := cacheRecord{
		Location: values.Get("locations"),
		Keyword:  values.Get("keywords"),
		Category: values.Get("categories"),
		Page:     values.Get("page"),
		Day:      values.Get("days"),
		Age:      values.Get("ages"),
		Sort:     values.Get("sort"),
	}
	raw, _ := json.Marshal(rec)
	return MD5(string(raw))
}

// logRecord is cacheRecord plus the request identity, hashed into the search
// log's hash column.
type logRecord struct {
	HashIPAgent string `json:"hash_ip_agent"`
	cacheRecord
}

// LogHash derives the search log hash from the filter parameters and the
// request identity.
func LogHash(values url.Values, hashIPAgent string) string {
	rec := logRecord{
		HashIPAgent: hashIPAgent,
		cacheRecord: cacheRecord{
			Location: values.Get("locations"),
			Keyword:  values.Get("keywords"),
			Category: values.Get("categories"),
			Page:     values.Get("page"),
			Day:      values.Get("days"),
			Age:      values.Get("ages"),
			Sort:     values.Get("sort"),
		},
	}
	raw, _ := json.Marshal(rec)
	return MD5(string(raw))
}

// HashIPAgent builds the request-identity column of the search log: the
// first 50 bytes of the user agent, three spaces, the client IP.
func HashIPAgent(userAgent, ip string) string {
	if len(userAgent) > 50 {
		userAgent = userAgent[:50]
	}
	return userAgent + "   " + ip
}

// MD5 returns the lowercase hex md5 of s.
func MD5(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
