package packer

import (
	"context"
	"errors"
	"sort"

	"keyring/internal/crypto"
	"keyring/internal/domain"
	"keyring/internal/protocol/envelope"
)

// BundleResolver fetches a recipient's public key bundle, normally the
// directory cache. It returns domain.ErrNotFound for users with no
// published keys.
type BundleResolver func(ctx context.Context, id domain.UserID) (domain.PublicKeyBundle, error)

// PackDual seals plaintext once for the peer and once for the sender,
// producing the E2EED1 wire string for a 1:1 conversation.
//
// The self copy exists because ephemeral-key encryption is not
// symmetric: without it the sender could never reopen their own sent
// history.
func PackDual(ctx context.Context, resolve BundleResolver, sender *crypto.Identity, selfID, peerID domain.UserID, plaintext []byte) (string, error) {
	peerBundle, err := resolve(ctx, peerID)
	if err != nil {
		return "", err
	}

	to, err := sealSingle(peerBundle, sender, plaintext)
	if err != nil {
		return "", err
	}
	me, err := sealSingle(sender.Bundle(), sender, plaintext)
	if err != nil {
		return "", err
	}
	return EncodeDual(to, me)
}

// PackGroup seals plaintext once per member and produces the E2EEG1
// wire string.
//
// Member ids are deduplicated and sorted ascending first so packing is
// canonical regardless of input order. Every member's bundle is
// resolved before any error is raised; if any id has no published keys
// the whole operation fails with a MissingRecipientsError and no wire
// string is produced.
func PackGroup(ctx context.Context, resolve BundleResolver, sender *crypto.Identity, memberIDs []domain.UserID, plaintext []byte) (string, error) {
	members := CanonicalMembers(memberIDs)

	bundles := make(map[domain.UserID]domain.PublicKeyBundle, len(members))
	var missing []domain.UserID
	for _, id := range members {
		b, err := resolve(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return "", err
		}
		bundles[id] = b
	}
	if len(missing) > 0 {
		return "", &domain.MissingRecipientsError{IDs: missing}
	}

	entries := make([]GroupEntry, 0, len(members))
	for _, id := range members {
		box, err := sealSingle(bundles[id], sender, plaintext)
		if err != nil {
			return "", err
		}
		entries = append(entries, GroupEntry{UID: id, Box: box})
	}
	return EncodeGroup(entries)
}

// CanonicalMembers returns the deduplicated, ascending-sorted member
// list. Ordering is applied here, at pack time, so the wire output is
// deterministic no matter how sealing is scheduled.
func CanonicalMembers(ids []domain.UserID) []domain.UserID {
	seen := make(map[domain.UserID]struct{}, len(ids))
	out := make([]domain.UserID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sealSingle(recipient domain.PublicKeyBundle, sender *crypto.Identity, plaintext []byte) (string, error) {
	env, err := envelope.Seal(recipient, sender, plaintext)
	if err != nil {
		return "", err
	}
	return EncodeSingle(env)
}
