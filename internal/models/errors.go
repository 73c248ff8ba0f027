package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrCategoryNameNotUnique       = errors.New("the category name is already in use")
	ErrBudgetMonthNotUnique        = errors.New("there already is a budget for this month")
	ErrBudgetLineCategoryNotUnique = errors.New("the budget already has a line for this category")
	ErrPlannedAmountNegative       = errors.New("planned amounts must be zero or positive")
	ErrAmountNotPositive           = errors.New("the transaction amount must be positive")
	ErrDirectionInvalid            = errors.New("the transaction direction must be debit or credit")
	ErrChatRoleInvalid             = errors.New("the chat message role must be user or assistant")
	ErrMatchRuleEmpty              = errors.New("the match rule pattern must not be empty")
)
