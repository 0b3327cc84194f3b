package repositories

import "errors"

// Сентинельные ошибки слоя репозиториев. Сервисы преобразуют их
// в AppError; наружу ошибки gorm не протекают.
var (
	ErrNotFound = errors.New("record not found")

	// ErrTaskConflict - задача изменила статус между чтением и записью
	// (например, конкурентное принятие ставки).
	ErrTaskConflict = errors.New("task status conflict")

	// ErrEscrowConflict - escrow уже покинул состояние held_in_escrow.
	ErrEscrowConflict = errors.New("escrow status conflict")

	// ErrEscrowExists - по задаче уже есть escrow-запись.
	ErrEscrowExists = errors.New("escrow record already exists")
)
