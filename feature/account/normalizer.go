package account

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"account-db-compare/core/reconcile"
)

// BigIntTag is the dataType used for arbitrary-precision integers.
const BigIntTag = "bi"

// errNotThisShape signals a structural miss so the next schema can be tried.
var errNotThisShape = errors.New("payload does not match schema")

// Normalizer decodes the two known account encodings into reconcile.Snapshot.
type Normalizer struct{}

// NewNormalizer creates a new account normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize parses one JSON payload. The Regular schema is attempted first,
// then the Special schema; only when both miss is ErrUnrecognizedShape returned.
// Only account.balance, account.nonce and the top-level nonce decide the shape.
func (n *Normalizer) Normalize(raw []byte) (reconcile.Snapshot, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return reconcile.Snapshot{}, &reconcile.NormalizeError{Err: reconcile.ErrUnrecognizedShape}
	}

	snap, err := parseRegular(env)
	if !errors.Is(err, errNotThisShape) {
		return snap, err
	}

	snap, err = parseSpecial(env)
	if !errors.Is(err, errNotThisShape) {
		return snap, err
	}

	return reconcile.Snapshot{}, &reconcile.NormalizeError{Err: reconcile.ErrUnrecognizedShape}
}

func parseRegular(env envelope) (reconcile.Snapshot, error) {
	if firstByte(env.Account) != '{' {
		return reconcile.Snapshot{}, errNotThisShape
	}
	var fields accountFields
	if err := json.Unmarshal(env.Account, &fields); err != nil {
		return reconcile.Snapshot{}, errNotThisShape
	}
	if firstByte(fields.Balance) != '{' && firstByte(fields.Nonce) != '{' {
		return reconcile.Snapshot{}, errNotThisShape
	}

	snap := reconcile.Snapshot{
		Kind:      reconcile.KindRegular,
		Hash:      extractString(env.Hash),
		Timestamp: extractInt(env.Timestamp),
	}

	var err error
	if !isNull(fields.Balance) {
		if snap.Balance, err = decodeTagged(fields.Balance); err != nil {
			return reconcile.Snapshot{}, &reconcile.NormalizeError{Field: "account.balance", Err: err}
		}
	}
	if !isNull(fields.Nonce) {
		if snap.Nonce, err = decodeTagged(fields.Nonce); err != nil {
			return reconcile.Snapshot{}, &reconcile.NormalizeError{Field: "account.nonce", Err: err}
		}
	}

	return snap, nil
}

func parseSpecial(env envelope) (reconcile.Snapshot, error) {
	if !isNull(env.Account) {
		return reconcile.Snapshot{}, errNotThisShape
	}

	// Only a JSON number or string nonce makes a Special account.
	var literal string
	switch b := firstByte(env.Nonce); {
	case b == '"':
		if err := json.Unmarshal(env.Nonce, &literal); err != nil {
			return reconcile.Snapshot{}, errNotThisShape
		}
	case b == '-' || (b >= '0' && b <= '9'):
		literal = string(bytes.TrimSpace(env.Nonce))
	default:
		return reconcile.Snapshot{}, errNotThisShape
	}

	nonce, err := decodeDecimal(strings.TrimSpace(literal))
	if err != nil {
		return reconcile.Snapshot{}, &reconcile.NormalizeError{Field: "nonce", Err: err}
	}

	return reconcile.Snapshot{
		Kind:      reconcile.KindSpecial,
		Nonce:     nonce,
		Hash:      extractString(env.Hash),
		Timestamp: extractInt(env.Timestamp),
	}, nil
}

// decodeTagged decodes a {"dataType":"bi","value":"<hex>"} pair.
// Hex digits are case-insensitive, leading zeros and an optional 0x prefix are
// accepted, signs are not.
func decodeTagged(raw json.RawMessage) (*big.Int, error) {
	var v taggedValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: invalid tagged value %s", reconcile.ErrMalformedNumber, raw)
	}
	if v.DataType != BigIntTag {
		return nil, fmt.Errorf("%w: unexpected dataType %q", reconcile.ErrMalformedNumber, v.DataType)
	}

	digits := strings.TrimSpace(v.Value)
	if len(digits) >= 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits = digits[2:]
	}
	if digits == "" || digits[0] == '-' || digits[0] == '+' {
		return nil, fmt.Errorf("%w: invalid hex %q", reconcile.ErrMalformedNumber, v.Value)
	}

	i, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, fmt.Errorf("%w: invalid hex %q", reconcile.ErrMalformedNumber, v.Value)
	}
	return i, nil
}

// decodeDecimal decodes an unsigned base-10 literal.
func decodeDecimal(s string) (*big.Int, error) {
	if s == "" || s[0] == '-' || s[0] == '+' {
		return nil, fmt.Errorf("%w: invalid decimal %q", reconcile.ErrMalformedNumber, s)
	}
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: invalid decimal %q", reconcile.ErrMalformedNumber, s)
	}
	return i, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// firstByte returns the first non-space byte of raw, or 0 when empty.
func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// extractString returns raw as a string when it is a JSON string, else "".
func extractString(raw json.RawMessage) string {
	var s string
	if firstByte(raw) != '"' || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// extractInt reads a JSON number or numeric string, yielding 0 for anything else.
func extractInt(raw json.RawMessage) int64 {
	text := string(bytes.TrimSpace(raw))
	if firstByte(raw) == '"' {
		text = extractString(raw)
	}
	if text == "" {
		return 0
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return int64(f)
	}
	return 0
}
