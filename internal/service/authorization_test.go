package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blogv2/internal/models"
)

func TestCanModifyPost(t *testing.T) {
	owner := &models.User{ID: 1}
	stranger := &models.User{ID: 2}
	post := &models.Post{ID: 5, AuthorID: 1}

	assert.True(t, CanModifyPost(owner, post))
	assert.False(t, CanModifyPost(stranger, post))
	assert.False(t, CanModifyPost(nil, post))
	assert.False(t, CanModifyPost(owner, nil))
}

func TestCanModifyUser(t *testing.T) {
	alice := &models.User{ID: 1}
	bob := &models.User{ID: 2}

	assert.True(t, CanModifyUser(alice, alice))
	assert.False(t, CanModifyUser(bob, alice))
	assert.False(t, CanModifyUser(nil, alice))
	assert.False(t, CanModifyUser(alice, nil))
}
