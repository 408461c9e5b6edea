package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	accountModel "campusfee_backend/internals/features/users/user/model"
)

// MemoryStore keeps accounts and payments in process memory. It backs
// DB_DRIVER=memory and the service/controller tests.
type MemoryStore struct {
	mu    sync.RWMutex
	state *memState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemState(time.Now)}
}

// NewMemoryStoreWithClock is NewMemoryStore with an injectable timestamp source.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{state: newMemState(now)}
}

var _ Store = (*MemoryStore)(nil)

// Transaction runs fn on a copy of the state under the write lock and only
// publishes the copy when fn succeeds.
func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(work); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemoryStore) read() (*memState, func()) {
	s.mu.RLock()
	return s.state, s.mu.RUnlock
}

func (s *MemoryStore) write() (*memState, func()) {
	s.mu.Lock()
	return s.state, s.mu.Unlock
}

func (s *MemoryStore) FindAccountByID(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error) {
	st, done := s.read()
	defer done()
	return st.FindAccountByID(ctx, id)
}

func (s *MemoryStore) FindAccountByEmail(ctx context.Context, email string) (*accountModel.AccountModel, error) {
	st, done := s.read()
	defer done()
	return st.FindAccountByEmail(ctx, email)
}

func (s *MemoryStore) FindAccountByRegistrationNumber(ctx context.Context, rn string) (*accountModel.AccountModel, error) {
	st, done := s.read()
	defer done()
	return st.FindAccountByRegistrationNumber(ctx, rn)
}

func (s *MemoryStore) FindAccountsByRole(ctx context.Context, role string) ([]accountModel.AccountModel, error) {
	st, done := s.read()
	defer done()
	return st.FindAccountsByRole(ctx, role)
}

func (s *MemoryStore) CountAccountsByRole(ctx context.Context, role string) (int64, error) {
	st, done := s.read()
	defer done()
	return st.CountAccountsByRole(ctx, role)
}

func (s *MemoryStore) SumTotalFeesByRole(ctx context.Context, role string) (decimal.Decimal, error) {
	st, done := s.read()
	defer done()
	return st.SumTotalFeesByRole(ctx, role)
}

func (s *MemoryStore) CreateAccount(ctx context.Context, acc *accountModel.AccountModel) error {
	st, done := s.write()
	defer done()
	return st.CreateAccount(ctx, acc)
}

func (s *MemoryStore) UpdateAccountFields(ctx context.Context, id uuid.UUID, patch AccountPatch) error {
	st, done := s.write()
	defer done()
	return st.UpdateAccountFields(ctx, id, patch)
}

func (s *MemoryStore) DeleteAccountByID(ctx context.Context, id uuid.UUID) error {
	st, done := s.write()
	defer done()
	return st.DeleteAccountByID(ctx, id)
}

func (s *MemoryStore) LockAccountByID(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error) {
	st, done := s.read()
	defer done()
	return st.LockAccountByID(ctx, id)
}

func (s *MemoryStore) FindPaymentsByStudentAndStatus(ctx context.Context, studentID uuid.UUID, status feeModel.PaymentStatus) ([]feeModel.PaymentModel, error) {
	st, done := s.read()
	defer done()
	return st.FindPaymentsByStudentAndStatus(ctx, studentID, status)
}

func (s *MemoryStore) FindPaymentsByStudentsAndStatus(ctx context.Context, studentIDs []uuid.UUID, status feeModel.PaymentStatus) ([]feeModel.PaymentModel, error) {
	st, done := s.read()
	defer done()
	return st.FindPaymentsByStudentsAndStatus(ctx, studentIDs, status)
}

func (s *MemoryStore) FindPaymentsByStudent(ctx context.Context, studentID uuid.UUID) ([]feeModel.PaymentModel, error) {
	st, done := s.read()
	defer done()
	return st.FindPaymentsByStudent(ctx, studentID)
}

func (s *MemoryStore) FindPaymentByIDAndStudent(ctx context.Context, id, studentID uuid.UUID) (*feeModel.PaymentModel, error) {
	st, done := s.read()
	defer done()
	return st.FindPaymentByIDAndStudent(ctx, id, studentID)
}

func (s *MemoryStore) CreatePayment(ctx context.Context, p *feeModel.PaymentModel) error {
	st, done := s.write()
	defer done()
	return st.CreatePayment(ctx, p)
}

func (s *MemoryStore) DeletePaymentsByStudent(ctx context.Context, studentID uuid.UUID) (int64, error) {
	st, done := s.write()
	defer done()
	return st.DeletePaymentsByStudent(ctx, studentID)
}

func (s *MemoryStore) CountPaymentsByStatus(ctx context.Context, status feeModel.PaymentStatus) (int64, error) {
	st, done := s.read()
	defer done()
	return st.CountPaymentsByStatus(ctx, status)
}

func (s *MemoryStore) SumPaymentsByStatus(ctx context.Context, status feeModel.PaymentStatus) (decimal.Decimal, error) {
	st, done := s.read()
	defer done()
	return st.SumPaymentsByStatus(ctx, status)
}

/* ====================== UNLOCKED STATE ====================== */

// memState is the unsynchronized store. It also serves as the Store handed
// to Transaction callbacks, which already run under the write lock.
type memState struct {
	now func() time.Time

	accounts     map[uuid.UUID]accountModel.AccountModel
	accountOrder []uuid.UUID
	payments     map[uuid.UUID]feeModel.PaymentModel
	paymentOrder []uuid.UUID
}

func newMemState(now func() time.Time) *memState {
	return &memState{
		now:      now,
		accounts: map[uuid.UUID]accountModel.AccountModel{},
		payments: map[uuid.UUID]feeModel.PaymentModel{},
	}
}

func (m *memState) clone() *memState {
	out := &memState{
		now:          m.now,
		accounts:     make(map[uuid.UUID]accountModel.AccountModel, len(m.accounts)),
		accountOrder: append([]uuid.UUID(nil), m.accountOrder...),
		payments:     make(map[uuid.UUID]feeModel.PaymentModel, len(m.payments)),
		paymentOrder: append([]uuid.UUID(nil), m.paymentOrder...),
	}
	for k, v := range m.accounts {
		out.accounts[k] = v
	}
	for k, v := range m.payments {
		out.payments[k] = v
	}
	return out
}

func (m *memState) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return fn(m)
}

func (m *memState) Ping(ctx context.Context) error { return ctx.Err() }

func (m *memState) FindAccountByID(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error) {
	acc, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyAccount(acc), nil
}

func (m *memState) FindAccountByEmail(ctx context.Context, email string) (*accountModel.AccountModel, error) {
	email = accountModel.NormalizeEmail(email)
	for _, id := range m.accountOrder {
		if acc := m.accounts[id]; acc.Email == email {
			return copyAccount(acc), nil
		}
	}
	return nil, ErrNotFound
}

func (m *memState) FindAccountByRegistrationNumber(ctx context.Context, rn string) (*accountModel.AccountModel, error) {
	rn = accountModel.NormalizeRegistrationNumber(rn)
	for _, id := range m.accountOrder {
		acc := m.accounts[id]
		if acc.RegistrationNumber != nil && *acc.RegistrationNumber == rn {
			return copyAccount(acc), nil
		}
	}
	return nil, ErrNotFound
}

func (m *memState) FindAccountsByRole(ctx context.Context, role string) ([]accountModel.AccountModel, error) {
	var out []accountModel.AccountModel
	for i := len(m.accountOrder) - 1; i >= 0; i-- {
		if acc := m.accounts[m.accountOrder[i]]; acc.Role == role {
			out = append(out, *copyAccount(acc))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memState) CountAccountsByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	for _, acc := range m.accounts {
		if acc.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *memState) SumTotalFeesByRole(ctx context.Context, role string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, acc := range m.accounts {
		if acc.Role == role {
			sum = sum.Add(acc.TotalFees)
		}
	}
	return sum, nil
}

func (m *memState) CreateAccount(ctx context.Context, acc *accountModel.AccountModel) error {
	acc.Normalize()
	for _, existing := range m.accounts {
		if existing.Email == acc.Email {
			return ErrDuplicateEmail
		}
		if acc.RegistrationNumber != nil && existing.RegistrationNumber != nil &&
			*existing.RegistrationNumber == *acc.RegistrationNumber {
			return ErrDuplicateRegistrationNumber
		}
	}
	if acc.ID == uuid.Nil {
		acc.ID = uuid.New()
	}
	if acc.Role == "" {
		acc.Role = accountModel.RoleStudent
	}
	now := m.now()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = now
	}
	acc.UpdatedAt = now

	m.accounts[acc.ID] = *copyAccount(*acc)
	m.accountOrder = append(m.accountOrder, acc.ID)
	return nil
}

func (m *memState) UpdateAccountFields(ctx context.Context, id uuid.UUID, patch AccountPatch) error {
	acc, ok := m.accounts[id]
	if !ok {
		return ErrNotFound
	}
	if patch.TotalFees != nil {
		acc.TotalFees = *patch.TotalFees
	}
	if patch.Name != nil {
		acc.Name = *patch.Name
	}
	if patch.Department != nil {
		d := *patch.Department
		acc.Department = &d
	}
	if patch.Year != nil {
		y := *patch.Year
		acc.Year = &y
	}
	if patch.Semester != nil {
		s := *patch.Semester
		acc.Semester = &s
	}
	if patch.Password != nil {
		acc.Password = *patch.Password
	}
	acc.UpdatedAt = m.now()
	m.accounts[id] = acc
	return nil
}

// DeleteAccountByID also drops the account's payments, mirroring the
// ON DELETE CASCADE foreign key of the SQL schema.
func (m *memState) DeleteAccountByID(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.accounts[id]; !ok {
		return ErrNotFound
	}
	delete(m.accounts, id)
	m.accountOrder = removeID(m.accountOrder, id)
	_, _ = m.DeletePaymentsByStudent(ctx, id)
	return nil
}

func (m *memState) LockAccountByID(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error) {
	return m.FindAccountByID(ctx, id)
}

func (m *memState) filterPayments(keep func(p feeModel.PaymentModel) bool) []feeModel.PaymentModel {
	var out []feeModel.PaymentModel
	for i := len(m.paymentOrder) - 1; i >= 0; i-- {
		if p := m.payments[m.paymentOrder[i]]; keep(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaymentDate.After(out[j].PaymentDate) })
	return out
}

func (m *memState) FindPaymentsByStudentAndStatus(ctx context.Context, studentID uuid.UUID, status feeModel.PaymentStatus) ([]feeModel.PaymentModel, error) {
	return m.filterPayments(func(p feeModel.PaymentModel) bool {
		return p.StudentID == studentID && p.Status == status
	}), nil
}

func (m *memState) FindPaymentsByStudentsAndStatus(ctx context.Context, studentIDs []uuid.UUID, status feeModel.PaymentStatus) ([]feeModel.PaymentModel, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	want := make(map[uuid.UUID]struct{}, len(studentIDs))
	for _, id := range studentIDs {
		want[id] = struct{}{}
	}
	return m.filterPayments(func(p feeModel.PaymentModel) bool {
		_, ok := want[p.StudentID]
		return ok && p.Status == status
	}), nil
}

func (m *memState) FindPaymentsByStudent(ctx context.Context, studentID uuid.UUID) ([]feeModel.PaymentModel, error) {
	return m.filterPayments(func(p feeModel.PaymentModel) bool {
		return p.StudentID == studentID
	}), nil
}

func (m *memState) FindPaymentByIDAndStudent(ctx context.Context, id, studentID uuid.UUID) (*feeModel.PaymentModel, error) {
	p, ok := m.payments[id]
	if !ok || p.StudentID != studentID {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *memState) CreatePayment(ctx context.Context, p *feeModel.PaymentModel) error {
	if _, ok := m.accounts[p.StudentID]; !ok {
		return ErrNotFound
	}
	for _, existing := range m.payments {
		if existing.TransactionID == p.TransactionID {
			return ErrDuplicateTransactionID
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := m.now()
	if p.PaymentDate.IsZero() {
		p.PaymentDate = now
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	stored := *p
	stored.Student = nil
	m.payments[p.ID] = stored
	m.paymentOrder = append(m.paymentOrder, p.ID)
	return nil
}

func (m *memState) DeletePaymentsByStudent(ctx context.Context, studentID uuid.UUID) (int64, error) {
	var n int64
	kept := m.paymentOrder[:0:0]
	for _, id := range m.paymentOrder {
		if m.payments[id].StudentID == studentID {
			delete(m.payments, id)
			n++
			continue
		}
		kept = append(kept, id)
	}
	m.paymentOrder = kept
	return n, nil
}

func (m *memState) CountPaymentsByStatus(ctx context.Context, status feeModel.PaymentStatus) (int64, error) {
	var n int64
	for _, p := range m.payments {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memState) SumPaymentsByStatus(ctx context.Context, status feeModel.PaymentStatus) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range m.payments {
		if p.Status == status {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

/* ====================== HELPERS ====================== */

// copyAccount detaches the pointer fields so callers cannot mutate stored rows.
func copyAccount(acc accountModel.AccountModel) *accountModel.AccountModel {
	out := acc
	if acc.Department != nil {
		d := *acc.Department
		out.Department = &d
	}
	if acc.Year != nil {
		y := *acc.Year
		out.Year = &y
	}
	if acc.Semester != nil {
		s := *acc.Semester
		out.Semester = &s
	}
	if acc.RegistrationNumber != nil {
		rn := *acc.RegistrationNumber
		out.RegistrationNumber = &rn
	}
	return &out
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
