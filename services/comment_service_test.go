package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentServiceWithMock(t *testing.T) (CommentService, *fakeCommentRepo, sqlmock.Sqlmock) {
	t.Helper()
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	comments := &fakeCommentRepo{existing: map[int]bool{3: true}}
	users := &fakeUserRepo{users: map[int]*models.User{9: {ID: 9, Name: "Ann"}}}
	return NewCommentService(database, comments, users), comments, mock
}

func TestCreateComment_InvalidEntityType(t *testing.T) {
	svc, comments, mock := newCommentServiceWithMock(t)

	_, err := svc.Create(context.Background(), CreateCommentInput{
		UserID: 9, EntityType: "tournament", EntityID: 1, CommentText: "Great day",
	})
	assertServiceError(t, err, ErrValidation, "Invalid entity_type")
	assert.Empty(t, comments.created)
	require.NoError(t, mock.ExpectationsWereMet())

	_, err = svc.ListThreads(context.Background(), "club", 1)
	assertServiceError(t, err, ErrValidation, "Invalid entity_type")
}

func TestCreateComment_MissingParent(t *testing.T) {
	svc, comments, mock := newCommentServiceWithMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateCommentInput{
		UserID: 9, EntityType: "image", EntityID: 1, CommentText: "Nice", ParentCommentID: intPtr(77),
	})
	assertServiceError(t, err, ErrNotFound, "Parent comment not found")
	assert.Empty(t, comments.created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateComment_UnknownUser(t *testing.T) {
	svc, _, mock := newCommentServiceWithMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateCommentInput{
		UserID: 10, EntityType: "video", EntityID: 1, CommentText: "Nice",
	})
	assertServiceError(t, err, ErrNotFound, "User not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateComment_Reply(t *testing.T) {
	svc, comments, mock := newCommentServiceWithMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	c, err := svc.Create(context.Background(), CreateCommentInput{
		UserID: 9, EntityType: "Achievement", EntityID: 2, CommentText: "  Well played  ", ParentCommentID: intPtr(3),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 60, c.ID)
	assert.Equal(t, models.CommentOnAchievement, c.EntityType)
	assert.Equal(t, "Well played", c.CommentText)
	require.Len(t, comments.created, 1)
}
