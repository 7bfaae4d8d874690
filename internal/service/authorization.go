package service

import (
	"blogv2/internal/models"
)

// Правила владения. Чистые предикаты, вызываются хендлерами после того,
// как ресурс найден: отсутствующий ресурс отдает 404 раньше любого 403.

// CanModifyPost - пост меняет и удаляет только его автор.
func CanModifyPost(identity *models.User, post *models.Post) bool {
	return identity != nil && post != nil && post.AuthorID == identity.ID
}

// CanModifyUser - профиль меняет и удаляет только сам пользователь.
func CanModifyUser(identity *models.User, target *models.User) bool {
	return identity != nil && target != nil && target.ID == identity.ID
}
