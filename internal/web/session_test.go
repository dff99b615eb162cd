package web_test

import (
	"testing"
	"time"

	"minishop/internal/web"

	"github.com/stretchr/testify/assert"
)

func TestSessionManager_IssueAndParse(t *testing.T) {
	manager := web.NewSessionManager("test-secret", time.Hour)

	token, err := manager.Issue(42, "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	sess, err := manager.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), sess.UserID)
	assert.Equal(t, "alice", sess.Username)
}

func TestSessionManager_RejectsExpiredToken(t *testing.T) {
	manager := web.NewSessionManager("test-secret", -time.Hour)

	token, err := manager.Issue(42, "alice")
	assert.NoError(t, err)

	_, err = manager.Parse(token)
	assert.Error(t, err)
}

func TestSessionManager_RejectsForeignSignature(t *testing.T) {
	issuer := web.NewSessionManager("one-secret", time.Hour)
	verifier := web.NewSessionManager("another-secret", time.Hour)

	token, err := issuer.Issue(42, "alice")
	assert.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestSessionManager_RejectsGarbage(t *testing.T) {
	manager := web.NewSessionManager("test-secret", time.Hour)

	_, err := manager.Parse("")
	assert.Error(t, err)

	_, err = manager.Parse("not.a.token")
	assert.Error(t, err)
}
