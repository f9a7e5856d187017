package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/model"
)

var FileRouteSchema = criteria.NewSchema[model.FileRoute]("file_route",
	criteria.ID(func(f *model.FileRoute) *int64 { return f.ID }),
	criteria.String("bucket", "bucket", func(f *model.FileRoute) *string { return f.Bucket }),
	criteria.String("objectKey", "object_key", func(f *model.FileRoute) *string { return f.ObjectKey }),
	criteria.String("contentType", "content_type", func(f *model.FileRoute) *string { return f.ContentType }),
	criteria.Integer("size", "size", func(f *model.FileRoute) *int64 { return f.Size }),
	criteria.Instant("createdAt", "created_at", func(f *model.FileRoute) *time.Time { return f.CreatedAt }),
	criteria.Instant("updatedAt", "updated_at", func(f *model.FileRoute) *time.Time { return f.UpdatedAt }),
	criteria.Bool("isDeleted", "is_deleted", func(f *model.FileRoute) *bool { return f.IsDeleted }),
	criteria.Instant("deletedAt", "deleted_at", func(f *model.FileRoute) *time.Time { return f.DeletedAt }),
	criteria.UUID("deletedBy", "deleted_by", func(f *model.FileRoute) *uuid.UUID { return f.DeletedBy }),
)

var FileRouteTable = &Table[model.FileRoute]{
	Entity:  "FileRoute",
	Schema:  FileRouteSchema,
	Columns: columns([]string{"bucket", "object_key", "content_type", "size"}, auditColumns),
	ID:      func(f *model.FileRoute) *int64 { return f.ID },
	SetID:   func(f *model.FileRoute, id int64) { f.ID = &id },
	Args: func(f *model.FileRoute) []any {
		return []any{f.Bucket, f.ObjectKey, f.ContentType, f.Size,
			f.CreatedAt, f.UpdatedAt, f.IsDeleted, f.DeletedAt, uuidArg(f.DeletedBy)}
	},
	Scan: func(row RowScanner) (*model.FileRoute, error) {
		var f model.FileRoute
		if err := row.Scan(&f.ID, &f.Bucket, &f.ObjectKey, &f.ContentType, &f.Size,
			&f.CreatedAt, &f.UpdatedAt, &f.IsDeleted, &f.DeletedAt, &f.DeletedBy); err != nil {
			return nil, err
		}
		return &f, nil
	},
}
