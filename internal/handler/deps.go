package handler

import (
	"accountd/internal/app/account"
	"accountd/internal/app/mailer"
	"accountd/internal/app/storage"
	"accountd/internal/app/token"
	"accountd/internal/configs"
)

// AppDeps bundles the collaborators every handler constructor receives.
type AppDeps struct {
	Config   *configs.AppConfig
	Accounts *account.Store
	Tokens   *token.Service
	Storage  storage.StorageService
	Notifier *mailer.Notifier
}
