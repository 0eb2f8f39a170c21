package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// marshalJSONB 把切片或映射字段序列化为 jsonb 列的值
func marshalJSONB(v any) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSONB 解析 jsonb 列的值，空列保持目标的零值
func unmarshalJSONB(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}

	return json.Unmarshal(data, v)
}
