package pricingrule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/pkg/dbmetrics"
	"github.com/m04kA/MNT-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var ruleColumns = []string{
	"id",
	"material_ids",
	"meeting_type",
	"min_duration",
	"max_duration",
	"student_price",
	"mentor_fee_percentage",
	"admin_fee_percentage",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами ценообразования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил ценообразования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило ценообразования
func (r *Repository) Create(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("pricing_rules").
		Columns(
			"material_ids",
			"meeting_type",
			"min_duration",
			"max_duration",
			"student_price",
			"mentor_fee_percentage",
			"admin_fee_percentage",
			"is_active",
		).
		Values(
			pq.Array(rule.MaterialIDs),
			rule.MeetingType,
			rule.MinDuration,
			rule.MaxDuration,
			rule.StudentPrice,
			rule.MentorFeePercentage,
			rule.AdminFeePercentage,
			rule.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByID получает правило по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("pricing_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := r.scanRuleRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// GetActive получает все активные правила
// Порядок не важен - выбор применимого правила выполняет domain.EvaluatePrice
func (r *Repository) GetActive(ctx context.Context) ([]*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("pricing_rules").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRules(rows)
}

// GetAll получает все правила, включая неактивные
func (r *Repository) GetAll(ctx context.Context) ([]*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("pricing_rules").
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRules(rows)
}

// Update обновляет правило ценообразования
func (r *Repository) Update(ctx context.Context, id int64, rule *domain.PricingRule) (*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("pricing_rules").
		Set("material_ids", pq.Array(rule.MaterialIDs)).
		Set("meeting_type", rule.MeetingType).
		Set("min_duration", rule.MinDuration).
		Set("max_duration", rule.MaxDuration).
		Set("student_price", rule.StudentPrice).
		Set("mentor_fee_percentage", rule.MentorFeePercentage).
		Set("admin_fee_percentage", rule.AdminFeePercentage).
		Set("is_active", rule.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rule.ID = id
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// Deactivate логически удаляет правило
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("pricing_rules").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

func (r *Repository) scanRuleRow(row *sql.Row) (*domain.PricingRule, error) {
	var rule domain.PricingRule
	var materialIDs pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&materialIDs,
		&rule.MeetingType,
		&rule.MinDuration,
		&rule.MaxDuration,
		&rule.StudentPrice,
		&rule.MentorFeePercentage,
		&rule.AdminFeePercentage,
		&rule.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.MaterialIDs = materialIDs
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

func (r *Repository) scanRules(rows *sql.Rows) ([]*domain.PricingRule, error) {
	rules := make([]*domain.PricingRule, 0)

	for rows.Next() {
		var rule domain.PricingRule
		var materialIDs pq.Int64Array
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&materialIDs,
			&rule.MeetingType,
			&rule.MinDuration,
			&rule.MaxDuration,
			&rule.StudentPrice,
			&rule.MentorFeePercentage,
			&rule.AdminFeePercentage,
			&rule.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}

		rule.MaterialIDs = materialIDs
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
