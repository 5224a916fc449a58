package packer

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"keyring/internal/domain"
)

// Wire format prefixes.
const (
	PrefixSingle = "E2EE1:"
	PrefixDual   = "E2EED1:"
	PrefixGroup  = "E2EEG1:"
)

// Format classifies a wire string by its prefix.
type Format int

const (
	// FormatPlain means no known prefix; the string is not encrypted.
	FormatPlain Format = iota
	FormatSingle
	FormatDual
	FormatGroup
)

// Classify performs the one-shot prefix classification of a wire
// string. Dual and group are checked before single because PrefixSingle
// is a prefix of neither but shares the leading "E2EE".
func Classify(wire string) Format {
	switch {
	case strings.HasPrefix(wire, PrefixDual):
		return FormatDual
	case strings.HasPrefix(wire, PrefixGroup):
		return FormatGroup
	case strings.HasPrefix(wire, PrefixSingle):
		return FormatSingle
	default:
		return FormatPlain
	}
}

// Dual is the E2EED1 body: two complete single wire strings.
type Dual struct {
	To string `json:"to"`
	Me string `json:"me"`
}

// GroupEntry addresses one single wire string to one member.
type GroupEntry struct {
	UID domain.UserID `json:"uid"`
	Box string        `json:"box"`
}

type groupBody struct {
	Env []GroupEntry `json:"env"`
}

// EncodeSingle wraps an envelope as a single wire string.
func EncodeSingle(env domain.Envelope) (string, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return PrefixSingle + base64.StdEncoding.EncodeToString(body), nil
}

// DecodeSingle parses a single wire string into an envelope.
func DecodeSingle(wire string) (domain.Envelope, error) {
	var env domain.Envelope
	if err := decodeBody(wire, PrefixSingle, &env); err != nil {
		return domain.Envelope{}, err
	}
	if err := validateEnvelope(env); err != nil {
		return domain.Envelope{}, err
	}
	return env, nil
}

// EncodeDual wraps the peer's copy and the sender's own copy.
func EncodeDual(to, me string) (string, error) {
	body, err := json.Marshal(Dual{To: to, Me: me})
	if err != nil {
		return "", err
	}
	return PrefixDual + base64.StdEncoding.EncodeToString(body), nil
}

// DecodeDual parses a dual wire string. Both halves must be present
// single wire strings.
func DecodeDual(wire string) (Dual, error) {
	var d Dual
	if err := decodeBody(wire, PrefixDual, &d); err != nil {
		return Dual{}, err
	}
	if Classify(d.To) != FormatSingle || Classify(d.Me) != FormatSingle {
		return Dual{}, fmt.Errorf("%w: dual halves must be single envelopes", domain.ErrBadEnvelope)
	}
	return d, nil
}

// EncodeGroup wraps one entry per member, in the order given.
func EncodeGroup(entries []GroupEntry) (string, error) {
	body, err := json.Marshal(groupBody{Env: entries})
	if err != nil {
		return "", err
	}
	return PrefixGroup + base64.StdEncoding.EncodeToString(body), nil
}

// DecodeGroup parses a group wire string into its entries.
func DecodeGroup(wire string) ([]GroupEntry, error) {
	var g groupBody
	if err := decodeBody(wire, PrefixGroup, &g); err != nil {
		return nil, err
	}
	if len(g.Env) == 0 {
		return nil, fmt.Errorf("%w: empty group", domain.ErrBadEnvelope)
	}
	for _, e := range g.Env {
		if e.UID == "" || Classify(e.Box) != FormatSingle {
			return nil, fmt.Errorf("%w: bad group entry", domain.ErrBadEnvelope)
		}
	}
	return g.Env, nil
}

// decodeBody strips the prefix, base64-decodes and strictly unmarshals
// the JSON body into out, rejecting unknown fields.
func decodeBody(wire, prefix string, out any) error {
	if !strings.HasPrefix(wire, prefix) {
		return fmt.Errorf("%w: missing %q prefix", domain.ErrBadEnvelope, prefix)
	}
	raw, err := base64.StdEncoding.DecodeString(wire[len(prefix):])
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBadEnvelope, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBadEnvelope, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", domain.ErrBadEnvelope)
	}
	return nil
}

func validateEnvelope(env domain.Envelope) error {
	switch {
	case env.Version != domain.EnvelopeVersion:
		return fmt.Errorf("%w: version %d", domain.ErrBadEnvelope, env.Version)
	case len(env.EphemeralKey) == 0, len(env.Ciphertext) == 0,
		len(env.Signature) == 0, len(env.SenderSignKey) == 0:
		return fmt.Errorf("%w: missing field", domain.ErrBadEnvelope)
	case len(env.IV) != 12:
		return fmt.Errorf("%w: iv length %d", domain.ErrBadEnvelope, len(env.IV))
	}
	return nil
}
