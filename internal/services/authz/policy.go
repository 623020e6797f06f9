// Package authz содержит правила доступа к курсам и урокам.
// Функции чистые: принимают данные запрашивающего и ресурса
// и возвращают решение, без обращения к транспорту или хранилищу.
//
// Модератор — пользователь с ролью moderator. Его привилегии несимметричны:
// он может редактировать чужие уроки, но не может создавать и удалять курсы
// и не может удалять уроки.
package authz

import "github.com/magabrotheeeer/lms-backend/internal/models"

// Requester описывает запрашивающего. Пустой UID означает анонимный запрос,
// который не проходит ни одну проверку.
type Requester struct {
	UID  string
	Role string
}

// IsAuthenticated сообщает, аутентифицирован ли запрашивающий.
func (r Requester) IsAuthenticated() bool {
	return r.UID != ""
}

// IsModerator проверяет принадлежность к роли модераторов.
func (r Requester) IsModerator() bool {
	return r.IsAuthenticated() && r.Role == models.RoleModerator
}

// CanCreateCourse — создавать курсы могут только аутентифицированные
// пользователи, не являющиеся модераторами.
func CanCreateCourse(r Requester) bool {
	return r.IsAuthenticated() && !r.IsModerator()
}

// CanDestroyCourse — удалять курсы модераторам так же запрещено.
func CanDestroyCourse(r Requester) bool {
	return r.IsAuthenticated() && !r.IsModerator()
}

// CanUpdateCourse — обновление курса требует только аутентификации.
// Владелец намеренно не проверяется, поведение сохранено как есть.
func CanUpdateCourse(r Requester) bool {
	return r.IsAuthenticated()
}

// SeesAllCourses — модератор видит все курсы, остальные только свои.
func SeesAllCourses(r Requester) bool {
	return r.IsModerator()
}

// CanMutateLesson — читать для изменения и обновлять урок могут
// его владелец и модератор.
func CanMutateLesson(r Requester, lesson *models.Lesson) bool {
	if !r.IsAuthenticated() {
		return false
	}
	return lesson.OwnerUID == r.UID || r.IsModerator()
}

// CanDeleteLesson — удалять уроки модератору запрещено независимо от
// владения; проверка модератора выполняется раньше общей проверки
// владельца, иначе модератор прошёл бы её.
func CanDeleteLesson(r Requester, lesson *models.Lesson) bool {
	if r.IsModerator() {
		return false
	}
	return CanMutateLesson(r, lesson)
}
