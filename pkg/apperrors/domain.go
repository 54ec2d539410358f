package apperrors

import (
	"fmt"
	"net/http"
	"strings"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (409)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// ErrInvalidTransition - запрошенный переход статуса работы не входит в граф переходов.
// Сообщение всегда называет текущий и запрошенный статусы.
func ErrInvalidTransition(from, to string) *AppError {
	return New(
		CodeInvalidTransition,
		"job",
		fmt.Sprintf("Invalid status transition from '%s' to '%s'", from, to),
		http.StatusConflict,
	).WithDetails(map[string]string{"current_status": from, "requested_status": to})
}

// ErrUnknownSkills - один или несколько навыков не найдены в каталоге.
// Перечисляет ВСЕ неизвестные имена, а не только первое.
func ErrUnknownSkills(names []string) *AppError {
	return New(
		CodeUnknownSkill,
		"skill",
		fmt.Sprintf("Unknown skills: %s", strings.Join(names, ", ")),
		http.StatusBadRequest,
	).WithDetails(map[string][]string{"unknown_skills": names})
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// ErrInvalidUserRole - операция не предусмотрена для роли пользователя.
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// ErrInsufficientPermissions - не владелец / не та роль для действия.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Jobs ---

// ErrNotJobOwner - только владелец работы может выполнять эту операцию.
var ErrNotJobOwner = New(
	CodeForbidden,
	"job",
	"Only the job owner can perform this operation",
	http.StatusForbidden,
)

// ErrJobNotOpen - заявки принимаются только пока работа открыта.
var ErrJobNotOpen = New(
	CodeInvalidStatus,
	"job",
	"Job is not open for applications",
	http.StatusConflict,
)

// ErrJobClosed - решения по заявкам возможны только пока работа открыта.
var ErrJobClosed = New(
	CodeInvalidStatus,
	"job",
	"Job is no longer accepting decisions",
	http.StatusConflict,
)

// ErrJobAlreadyAssigned - у работы уже есть назначенный исполнитель.
var ErrJobAlreadyAssigned = New(
	CodeConflict,
	"job",
	"Job already has an assigned artisan",
	http.StatusConflict,
)

// ErrJobNotAssigned - у работы нет назначенного исполнителя.
var ErrJobNotAssigned = New(
	CodeInvalidStatus,
	"job",
	"Job has no assigned artisan",
	http.StatusConflict,
)

// ErrJobWrongStatus - операция требует другого текущего статуса работы.
var ErrJobWrongStatus = New(
	CodeInvalidStatus,
	"job",
	"Operation not allowed for the current job status",
	http.StatusConflict,
)

// --- Applications ---

// ErrApplicationAlreadyExists - заявка от этого мастера на эту работу уже есть.
var ErrApplicationAlreadyExists = New(
	CodeAlreadyExists,
	"application",
	"You have already applied to this job",
	http.StatusConflict,
)

// ErrApplicationNotPending - заявка уже рассмотрена или отозвана.
var ErrApplicationNotPending = New(
	CodeInvalidStatus,
	"application",
	"Application is no longer pending",
	http.StatusConflict,
)

// --- Reviews ---

// ErrReviewAlreadyExists - на завершенную работу уже оставлен отзыв.
var ErrReviewAlreadyExists = New(
	CodeAlreadyExists,
	"review",
	"A review already exists for this job",
	http.StatusConflict,
)

// ErrJobNotCompleted - отзыв возможен только по завершенной работе.
var ErrJobNotCompleted = New(
	CodeInvalidStatus,
	"review",
	"Can only review completed jobs",
	http.StatusConflict,
)

// --- Auth & User Status ---

// ErrWeakPassword - пароль слишком слабый.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

// ErrEmailAlreadyExists - email уже используется.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен (refresh, reset).
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrUserSuspended - аккаунт временно заблокирован.
var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

// ErrUserBanned - аккаунт забанен.
var ErrUserBanned = New(
	CodeForbidden,
	"auth",
	"Your account has been banned",
	http.StatusForbidden,
)
