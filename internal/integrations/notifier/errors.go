package notifier

import "errors"

var (
	// ErrConnect возвращается, если Redis недоступен при старте
	ErrConnect = errors.New("notifier: redis connection failed")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("notifier: publish failed")
)
