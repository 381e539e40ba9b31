// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "ai_flashcards"
	AppVersion = "0.3.0"
)

// 対応しているDBドライバ
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":3001"
	DefaultLogLevel       = "info"
	DefaultDatabaseDriver = DriverSQLite
	DefaultSQLitePath     = "flashcards.db"

	DefaultOpenAIModel                   = "gpt-4o-mini"
	DefaultOpenAITimeout                 = 60 * time.Second
	DefaultGenerateTemperature   float32 = 0.3
	DefaultRegenerateTemperature float32 = 0.4

	DefaultMinCards    = 4
	DefaultMaxCards    = 40
	DefaultCardCount   = 10
	DefaultSnapshotKey = "flashcards-v1"
)
