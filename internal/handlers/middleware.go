package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"arcadechess/internal/rules"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// appendPromotion adds the promotion letter to a four character move. promo
// may be a letter ("n") or a piece name ("knight"); empty leaves the move as
// is and the engine promotes to a queen.
func appendPromotion(uci, promo string) (string, error) {
	promo = strings.ToLower(strings.TrimSpace(promo))
	if promo == "" || len(uci) != 4 {
		return uci, nil
	}
	letter, ok := promotionLetters[promo]
	if !ok {
		return "", fmt.Errorf("%w: %q", rules.ErrInvalidPromotion, promo)
	}
	return uci + letter, nil
}

var promotionLetters = map[string]string{
	"q": "q", "queen": "q",
	"r": "r", "rook": "r",
	"b": "b", "bishop": "b",
	"n": "n", "knight": "n",
}

var allowedEmoji = map[string]struct{}{
	"👍": {}, "👎": {}, "❤️": {}, "😠": {}, "😢": {}, "🎉": {}, "👏": {}, "😂": {}, "🤣": {}, "😎": {}, "🤔": {}, "😏": {},
	"🙃": {}, "😴": {}, "🫡": {}, "🤯": {}, "🤡": {}, "♟️": {}, "♞": {}, "♝": {}, "♜": {}, "♛": {}, "♚": {}, "⏱️": {},
	"🏳️": {}, "🔄": {}, "🏆": {}, "🔥": {}, "💀": {}, "🩸": {}, "⚡": {}, "🚀": {}, "🕳️": {}, "🎯": {}, "💥": {}, "🧠": {},
	"🍿": {}, "☕": {}, "🐢": {}, "🐇": {}, "🤝": {}, "🤬": {}, "🪦": {}, "🐌": {}, "🎭": {}, "🙏": {}, "🦄": {}, "💎": {},
}

// isAllowedEmoji checks if an emoji is in the allowed list
func isAllowedEmoji(emoji string) bool {
	_, ok := allowedEmoji[emoji]
	return ok
}
