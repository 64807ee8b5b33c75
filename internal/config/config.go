package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	GoEnv      string // dev/prod
	AppBaseURL string // アクティベーションリンクの組み立てに使う
	FEURL      string // フロントURL（CORSで使う）
	UploadDir  string // 商品画像の保存先
}

// Loadは環境変数から設定を読み込む
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv:      getenv("GO_ENV", "dev"),
		AppBaseURL: getenv("APP_BASE_URL", "http://localhost:8080"),
		FEURL:      getenv("FE_URL", "http://localhost:3000"),
		UploadDir:  getenv("UPLOAD_DIR", "uploads"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
