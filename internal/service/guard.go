package service

import "feedengine/internal/models"

// AuthorizeDelete allows only the post's author to delete it.
func AuthorizeDelete(post *models.Post, requesterID uint) error {
	if post == nil || requesterID == 0 || post.UserID != requesterID {
		return models.NewForbiddenError("You can delete only your posts")
	}
	return nil
}
