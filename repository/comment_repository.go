package repository

import (
	"fmt"

	"soundlink/model"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// Comments are the newest module and go through GORM rather than the
// hand-written SQL the older repositories use.
type CommentRepository interface {
	CreateComment(comment *model.Comment) error
	GetCommentsBySongID(songID int64) ([]*model.Comment, error)
	GetCommentsByAlbumID(albumID int64) ([]*model.Comment, error)
	GetCommentByID(id int64) (*model.Comment, error)
	DeleteComment(id int64) error
}

// gormCommentRepository implements CommentRepository on GORM.
type gormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new gormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{db: db}
}

// CreateComment inserts a comment and fills in its generated ID.
func (r *gormCommentRepository) CreateComment(comment *model.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetCommentsBySongID returns the comments on a song, newest first, with
// the author's username joined in for display.
func (r *gormCommentRepository) GetCommentsBySongID(songID int64) ([]*model.Comment, error) {
	return r.listComments("comments.song_id = ?", songID)
}

// GetCommentsByAlbumID returns the comments on an album, newest first.
func (r *gormCommentRepository) GetCommentsByAlbumID(albumID int64) ([]*model.Comment, error) {
	return r.listComments("comments.album_id = ?", albumID)
}

func (r *gormCommentRepository) listComments(cond string, arg int64) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := r.db.Model(&model.Comment{}).
		Select("comments.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where(cond, arg).
		Order("comments.created_at DESC").
		Scan(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	return comments, nil
}

// GetCommentByID retrieves one comment. Returns (nil, nil) when absent.
func (r *gormCommentRepository) GetCommentByID(id int64) (*model.Comment, error) {
	comment := &model.Comment{}
	err := r.db.First(comment, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment by ID %d: %w", id, err)
	}
	return comment, nil
}

// DeleteComment removes a comment by id.
func (r *gormCommentRepository) DeleteComment(id int64) error {
	if err := r.db.Delete(&model.Comment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete comment ID %d: %w", id, err)
	}
	return nil
}
