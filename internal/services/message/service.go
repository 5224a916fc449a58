package message

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"keyring/internal/attachment"
	"keyring/internal/directory"
	"keyring/internal/domain"
	"keyring/internal/protocol/envelope"
	"keyring/internal/protocol/packer"
	identitysvc "keyring/internal/services/identity"
)

// LockedPlaceholder is what the UI shows for a message no candidate
// envelope could decrypt. Wrong key, tampering and missing candidates
// all collapse into this one value on purpose.
const LockedPlaceholder = "🔒 Encrypted message"

// Service encrypts outgoing messages and dispatches incoming ones.
type Service struct {
	selfID      domain.UserID
	identities  *identitysvc.Service
	dir         *directory.Cache
	attachments *attachment.Cache
	log         *logrus.Entry
}

// New constructs a message service for one namespace.
func New(ns domain.Namespace, selfID domain.UserID, identities *identitysvc.Service, dir *directory.Cache, attachments *attachment.Cache) *Service {
	return &Service{
		selfID:      selfID,
		identities:  identities,
		dir:         dir,
		attachments: attachments,
		log: logrus.WithFields(logrus.Fields{
			"component": "message",
			"namespace": ns.String(),
		}),
	}
}

// EncryptForUser produces the dual wire string for a 1:1 message: one
// envelope for the peer and one self copy.
func (s *Service) EncryptForUser(ctx context.Context, peer domain.UserID, plaintext string) (string, error) {
	id, err := s.identities.Identity()
	if err != nil {
		return "", err
	}
	return packer.PackDual(ctx, s.resolver(), id, s.selfID, peer, []byte(plaintext))
}

// EncryptForGroup produces the group wire string, one envelope per
// member. All-or-nothing: any member without published keys fails the
// whole call.
func (s *Service) EncryptForGroup(ctx context.Context, members []domain.UserID, plaintext string) (string, error) {
	id, err := s.identities.Identity()
	if err != nil {
		return "", err
	}
	return packer.PackGroup(ctx, s.resolver(), id, members, []byte(plaintext))
}

// EncryptPayload seals a structured payload (text plus attachment
// secrets) for a peer, remembering the secrets locally so the sender
// can reopen its own attachments.
func (s *Service) EncryptPayload(ctx context.Context, peer domain.UserID, payload domain.Payload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	if err := s.attachments.Remember(payload.Attachments); err != nil {
		return "", err
	}
	return s.EncryptForUser(ctx, peer, string(raw))
}

// Decrypt resolves an incoming wire string to display text. It never
// returns an error to the caller: plaintext passes through unchanged
// and undecryptable messages come back as the locked placeholder.
func (s *Service) Decrypt(ctx context.Context, sender domain.UserID, wire string) string {
	candidates, ok := s.candidates(sender, wire)
	if !ok {
		return wire // no known prefix, not encrypted
	}

	for i, single := range candidates {
		pt, err := s.open(ctx, sender, single)
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"sender":    sender.String(),
				"candidate": i,
			}).Debug("candidate failed")
			continue
		}
		return s.renderPlaintext(pt)
	}
	return LockedPlaceholder
}

// candidates classifies the wire string and returns the ordered single
// envelopes to attempt. ok is false for plain strings.
func (s *Service) candidates(sender domain.UserID, wire string) ([]string, bool) {
	switch packer.Classify(wire) {
	case packer.FormatSingle:
		return []string{wire}, true

	case packer.FormatDual:
		d, err := packer.DecodeDual(wire)
		if err != nil {
			return nil, true // malformed but tagged: locked, not plain
		}
		// The half matching the viewer's role first: our own copy when
		// we sent it, the to-copy otherwise. The other half stays as a
		// fallback.
		if sender == s.selfID {
			return []string{d.Me, d.To}, true
		}
		return []string{d.To, d.Me}, true

	case packer.FormatGroup:
		entries, err := packer.DecodeGroup(wire)
		if err != nil {
			return nil, true
		}
		ordered := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.UID == s.selfID {
				ordered = append(ordered, e.Box)
			}
		}
		// Remaining entries in original order, for the odd case where
		// membership ids are inconsistent with ours.
		for _, e := range entries {
			if e.UID != s.selfID {
				ordered = append(ordered, e.Box)
			}
		}
		return ordered, true

	default:
		return nil, false
	}
}

func (s *Service) open(ctx context.Context, sender domain.UserID, single string) ([]byte, error) {
	env, err := packer.DecodeSingle(single)
	if err != nil {
		return nil, err
	}
	id, err := s.identities.Identity()
	if err != nil {
		return nil, err
	}
	return envelope.Open(ctx, sender, env, id, envelope.BundleResolver(s.resolver()))
}

// renderPlaintext extracts display text, routing any embedded
// attachment secrets into the cache first. A malformed structured
// payload falls back to the whole plaintext as display text.
func (s *Service) renderPlaintext(pt []byte) string {
	text := string(pt)
	if !strings.HasPrefix(text, "{") {
		return text
	}
	var payload domain.Payload
	if err := json.Unmarshal(pt, &payload); err != nil {
		return text
	}
	if len(payload.Attachments) > 0 {
		if err := s.attachments.Remember(payload.Attachments); err != nil {
			s.log.WithError(err).Warn("failed to cache attachment secrets")
		}
	}
	return payload.Text
}

func (s *Service) resolver() packer.BundleResolver {
	return func(ctx context.Context, id domain.UserID) (domain.PublicKeyBundle, error) {
		return s.dir.Bundle(ctx, id, false)
	}
}
