package models

// Conversation steps. Each step owns validation of the next inbound
// message; a failed validation keeps the user on the same step.
const (
	StateAwaitFullName      = "await_full_name"
	StateAwaitPhone         = "await_phone"
	StateAwaitNameConfirm   = "await_name_confirm"
	StateAwaitOrderNumber   = "await_order_number"
	StateAwaitLocation      = "await_location"
	StateAwaitFinalConfirm  = "await_final_confirm"
	StateAwaitApplicantCode = "await_applicant_code" // admin order lookup
)

// Supported interface languages.
const (
	LangRU = "ru"
	LangEN = "en"
	LangUZ = "uz"
)

// Languages lists selectable language codes in display order.
var Languages = []string{LangRU, LangEN, LangUZ}

const (
	ParseModeHTML = "HTML"
)

const (
	// ApplicantCodePrefix prefixes every generated applicant code.
	ApplicantCodePrefix = "Gv"

	// ApplicantCodeBase is added to the order count when deriving the
	// numeric part of an applicant code.
	ApplicantCodeBase = 1000
)

const (
	// DefaultRedisTTL время жизни состояния пользователя в Redis
	DefaultRedisTTL = 24 * 60 * 60 // 24 часа в секундах

	// WorkerQueueSize размер очереди воркера
	WorkerQueueSize = 128

	// RateLimitMessages количество сообщений в окне
	RateLimitMessages = 20

	// RateLimitWindow окно ограничения частоты сообщений
	RateLimitWindow = 60 // 1 минута в секундах
)
