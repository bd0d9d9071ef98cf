package store

import (
	"context"
	"fmt"

	"user-hub/internal/database"
	"user-hub/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, first_name, last_name, other_name, email, phone,
	 birthday, city, additional_info, is_admin, password_hash, created_at`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.OtherName,
		&u.Email,
		&u.Phone,
		&u.Birthday,
		&u.City,
		&u.AdditionalInfo,
		&u.IsAdmin,
		&u.PasswordHash,
		&u.CreatedAt,
	)
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, other_name, email, phone,
		   birthday, city, additional_info, is_admin, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		u.FirstName,
		u.LastName,
		u.OtherName,
		u.Email,
		u.Phone,
		u.Birthday,
		u.City,
		u.AdditionalInfo,
		u.IsAdmin,
		u.PasswordHash,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// UpdateUser 更新使用者所有可編輯欄位（管理員路徑），密碼不在此更新。
// 查無此列時回傳 pgx.ErrNoRows
func UpdateUser(ctx context.Context, db database.DB, u *model.User) error {
	row := db.QueryRow(ctx,
		`UPDATE users
		 SET first_name = $1, last_name = $2, other_name = $3, email = $4,
		     phone = $5, birthday = $6, city = $7, additional_info = $8,
		     is_admin = $9
		 WHERE id = $10
		 RETURNING id`,
		u.FirstName,
		u.LastName,
		u.OtherName,
		u.Email,
		u.Phone,
		u.Birthday,
		u.City,
		u.AdditionalInfo,
		u.IsAdmin,
		u.ID,
	)
	var id int
	if err := row.Scan(&id); err != nil {
		return fmt.Errorf("UpdateUser: %w", err)
	}
	return nil
}

// UpdateUserProfile 更新個人資料欄位（本人路徑），不含 is_admin 與密碼
func UpdateUserProfile(ctx context.Context, db database.DB, u *model.User) error {
	row := db.QueryRow(ctx,
		`UPDATE users
		 SET first_name = $1, last_name = $2, other_name = $3, email = $4,
		     phone = $5, birthday = $6, city = $7, additional_info = $8
		 WHERE id = $9
		 RETURNING id`,
		u.FirstName,
		u.LastName,
		u.OtherName,
		u.Email,
		u.Phone,
		u.Birthday,
		u.City,
		u.AdditionalInfo,
		u.ID,
	)
	var id int
	if err := row.Scan(&id); err != nil {
		return fmt.Errorf("UpdateUserProfile: %w", err)
	}
	return nil
}

func UpdateUserPassword(ctx context.Context, db database.DB, userID int, passwordHash string) error {
	_, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", err)
	}
	return nil
}

// DeleteUser 刪除使用者，查無此列時回傳 pgx.ErrNoRows
func DeleteUser(ctx context.Context, db database.DB, userID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", pgx.ErrNoRows)
	}
	return nil
}

// ListUsers 依 id 排序回傳分頁結果與總筆數
func ListUsers(ctx context.Context, db database.DB, limit, offset int) ([]model.User, int, error) {
	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}

	rows, err := db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 ORDER BY id
		 LIMIT $1 OFFSET $2`,
		limit,
		offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, 0, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}
	return users, total, nil
}
