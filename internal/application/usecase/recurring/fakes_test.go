// Package recurring contains the recurring expense reconciliation use cases.
package recurring

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
)

// fixedClock returns a constant instant from Now.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

// fakeTemplateRepo is an in-memory RecurringTemplateRepository.
type fakeTemplateRepo struct {
	templates map[uuid.UUID]*entity.RecurringTemplate
	order     []uuid.UUID
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[uuid.UUID]*entity.RecurringTemplate)}
}

func (r *fakeTemplateRepo) Create(ctx context.Context, template *entity.RecurringTemplate) error {
	cp := *template
	r.templates[template.ID] = &cp
	r.order = append(r.order, template.ID)
	return nil
}

func (r *fakeTemplateRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTemplate, error) {
	tmpl, ok := r.templates[id]
	if !ok {
		return nil, nil
	}
	cp := *tmpl
	return &cp, nil
}

func (r *fakeTemplateRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringTemplate, error) {
	var out []*entity.RecurringTemplate
	for _, id := range r.order {
		if tmpl := r.templates[id]; tmpl.UserID == userID {
			cp := *tmpl
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringTemplate, error) {
	var out []*entity.RecurringTemplate
	for _, id := range r.order {
		if tmpl := r.templates[id]; tmpl.UserID == userID && tmpl.Active {
			cp := *tmpl
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) Update(ctx context.Context, template *entity.RecurringTemplate) error {
	cp := *template
	r.templates[template.ID] = &cp
	return nil
}

func (r *fakeTemplateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.templates, id)
	return nil
}

// fakeDocumentRepo is an in-memory MonthlyDocumentRepository keyed by
// user and period.
type fakeDocumentRepo struct {
	docs map[string]*entity.MonthlyExpenseDocument
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*entity.MonthlyExpenseDocument)}
}

func docKey(userID uuid.UUID, period string) string {
	return userID.String() + "/" + period
}

func (r *fakeDocumentRepo) FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, period string) (*entity.MonthlyExpenseDocument, error) {
	doc, ok := r.docs[docKey(userID, period)]
	if !ok {
		return nil, nil
	}
	cp := *doc
	cp.Items = append([]entity.MonthlyExpenseItem(nil), doc.Items...)
	return &cp, nil
}

func (r *fakeDocumentRepo) Save(ctx context.Context, doc *entity.MonthlyExpenseDocument) error {
	cp := *doc
	cp.Items = append([]entity.MonthlyExpenseItem(nil), doc.Items...)
	r.docs[docKey(doc.UserID, doc.Period)] = &cp
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, userID uuid.UUID, period string) error {
	delete(r.docs, docKey(userID, period))
	return nil
}

func (r *fakeDocumentRepo) UpdateItemStatus(ctx context.Context, userID uuid.UUID, period string, itemID uuid.UUID, status entity.ItemStatus) error {
	doc, ok := r.docs[docKey(userID, period)]
	if !ok {
		return nil
	}
	for i := range doc.Items {
		if doc.Items[i].ID == itemID {
			doc.Items[i].Status = status
			if status == entity.ItemStatusPaid {
				now := time.Now().UTC()
				doc.Items[i].PaidAt = &now
			}
		}
	}
	return nil
}

// fakeTransactionRepo is an in-memory TransactionRepository.
type fakeTransactionRepo struct {
	transactions map[uuid.UUID]*entity.Transaction
	order        []uuid.UUID
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[uuid.UUID]*entity.Transaction)}
}

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	cp := *transaction
	r.transactions[transaction.ID] = &cp
	r.order = append(r.order, transaction.ID)
	return nil
}

func (r *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (r *fakeTransactionRepo) FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	tx, err := r.FindByID(ctx, id)
	if err != nil || tx == nil {
		return nil, err
	}
	return &entity.TransactionWithCategory{Transaction: tx}, nil
}

func (r *fakeTransactionRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, id := range r.order {
		if tx := r.transactions[id]; tx != nil && tx.UserID == userID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindRecurringByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, id := range r.order {
		if tx := r.transactions[id]; tx != nil && tx.UserID == userID && tx.IsRecurring {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindByRecurringItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Transaction, error) {
	for _, id := range r.order {
		tx := r.transactions[id]
		if tx != nil && tx.UserID == userID && tx.RecurringItemID != nil && *tx.RecurringItemID == itemID {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	return &entity.TransactionListResult{}, nil
}

func (r *fakeTransactionRepo) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	totals := &entity.TransactionTotals{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
		NetTotal:     decimal.Zero,
	}
	for _, id := range r.order {
		tx := r.transactions[id]
		if tx == nil || tx.UserID != filter.UserID {
			continue
		}
		if tx.Type == entity.TransactionTypeIncome {
			totals.IncomeTotal = totals.IncomeTotal.Add(tx.Amount)
		} else {
			totals.ExpenseTotal = totals.ExpenseTotal.Add(tx.Amount)
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals, nil
}

func (r *fakeTransactionRepo) Update(ctx context.Context, transaction *entity.Transaction) error {
	cp := *transaction
	r.transactions[transaction.ID] = &cp
	return nil
}

func (r *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.transactions, id)
	return nil
}

func (r *fakeTransactionRepo) ExistsByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	tx, ok := r.transactions[id]
	return ok && tx.UserID == userID, nil
}
