package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/placepulse/placepulse/internal/domain/model"
	"github.com/placepulse/placepulse/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo is the sqlite implementation of the SessionStore port. The
// whole record occupies a single slot and is written as one JSON payload, so
// concurrent writers can never leave a partial token pair behind. When an
// encryption key is configured the payload is AES-256-GCM encrypted at rest.
type SessionRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil stores plain JSON.
}

// NewSessionRepo creates a SessionRepo. key must be 32 bytes for AES-256-GCM,
// or nil to store the payload unencrypted.
func NewSessionRepo(db *DB, key []byte) *SessionRepo {
	return &SessionRepo{db: db, key: key}
}

// Load retrieves the stored session. An absent slot returns (nil, nil); an
// unreadable payload (corrupt JSON, wrong key, partial record) is logged and
// treated as absent so a bad record can never wedge the request pipeline.
func (r *SessionRepo) Load(ctx context.Context) (*model.Session, error) {
	const query = `SELECT payload FROM session WHERE slot = ?`
	var payload string
	err := r.db.Reader.QueryRowContext(ctx, query, driven.SessionSlot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	plaintext, err := r.decrypt(payload)
	if err != nil {
		slog.Warn("sqlite: undecryptable session payload, treating as absent", "error", err)
		return nil, nil
	}

	var session model.Session
	if err := json.Unmarshal([]byte(plaintext), &session); err != nil {
		slog.Warn("sqlite: malformed session payload, treating as absent", "error", err)
		return nil, nil
	}
	if !session.Valid() {
		slog.Warn("sqlite: partial session payload, treating as absent")
		return nil, nil
	}

	return &session, nil
}

// Save stores or replaces the session record in its entirety.
func (r *SessionRepo) Save(ctx context.Context, session *model.Session) error {
	if !session.Valid() {
		return driven.ErrPartialSession
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	payload, err := r.encrypt(string(raw))
	if err != nil {
		return fmt.Errorf("encrypt session: %w", err)
	}

	const query = `INSERT OR REPLACE INTO session (slot, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`
	if _, err := r.db.Writer.ExecContext(ctx, query, driven.SessionSlot, payload); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an empty slot is a no-op.
func (r *SessionRepo) Clear(ctx context.Context) error {
	const query = `DELETE FROM session WHERE slot = ?`
	if _, err := r.db.Writer.ExecContext(ctx, query, driven.SessionSlot); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded
// string containing the nonce (12 bytes) prepended to the ciphertext. With no
// key configured the plaintext passes through unchanged.
func (r *SessionRepo) encrypt(plaintext string) (string, error) {
	if r.key == nil {
		return plaintext, nil
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext, or passes the
// payload through when no key is configured.
func (r *SessionRepo) decrypt(payload string) (string, error) {
	if r.key == nil {
		return payload, nil
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}
