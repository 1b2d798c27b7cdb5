package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/aqsaty/aqsaty-backend/internal/domain"
	ws "github.com/aqsaty/aqsaty-backend/internal/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MockTx is a mock pgx.Tx that records commit/rollback calls
type MockTx struct {
	Committed  bool
	RolledBack bool
	CommitErr  error
}

// Begin starts a pseudo nested transaction
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return m, nil }

// Commit records the commit
func (m *MockTx) Commit(ctx context.Context) error {
	if m.CommitErr != nil {
		return m.CommitErr
	}
	m.Committed = true
	return nil
}

// Rollback records the rollback; after a commit it is a closed-tx no-op,
// matching pgx semantics for deferred rollbacks
func (m *MockTx) Rollback(ctx context.Context) error {
	if m.Committed {
		return pgx.ErrTxClosed
	}
	m.RolledBack = true
	return nil
}

func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (m *MockTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (m *MockTx) Conn() *pgx.Conn { return nil }

// MockTxBeginner implements service.TxBeginner handing out a MockTx
type MockTxBeginner struct {
	Tx       *MockTx
	BeginErr error
}

// NewMockTxBeginner creates a MockTxBeginner with a fresh MockTx
func NewMockTxBeginner() *MockTxBeginner {
	return &MockTxBeginner{Tx: &MockTx{}}
}

// Begin returns the mock transaction
func (m *MockTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.BeginErr != nil {
		return nil, m.BeginErr
	}
	return m.Tx, nil
}

// MockCustomerRepository is a mock implementation of domain.CustomerRepository
type MockCustomerRepository struct {
	Customers map[int32]*domain.Customer
	NextID    int32
	CreateFn  func(customer *domain.Customer) (*domain.Customer, error)
}

// NewMockCustomerRepository creates a new MockCustomerRepository
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		Customers: make(map[int32]*domain.Customer),
		NextID:    1,
	}
}

// CreateTx creates a customer, ignoring the transaction handle
func (m *MockCustomerRepository) CreateTx(tx interface{}, customer *domain.Customer) (*domain.Customer, error) {
	if m.CreateFn != nil {
		return m.CreateFn(customer)
	}
	created := *customer
	created.ID = m.NextID
	created.CreatedAt = time.Now()
	m.Customers[created.ID] = &created
	m.NextID++
	return &created, nil
}

// GetByID retrieves a customer by ID
func (m *MockCustomerRepository) GetByID(id int32) (*domain.Customer, error) {
	if customer, ok := m.Customers[id]; ok {
		return customer, nil
	}
	return nil, domain.ErrCustomerNotFound
}

// MockContractRepository is a mock implementation of domain.ContractRepository
type MockContractRepository struct {
	Contracts map[int32]*domain.Contract
	NextID    int32
	CreateFn  func(contract *domain.Contract) (*domain.Contract, error)
}

// NewMockContractRepository creates a new MockContractRepository
func NewMockContractRepository() *MockContractRepository {
	return &MockContractRepository{
		Contracts: make(map[int32]*domain.Contract),
		NextID:    1,
	}
}

// CreateTx creates a contract, ignoring the transaction handle
func (m *MockContractRepository) CreateTx(tx interface{}, contract *domain.Contract) (*domain.Contract, error) {
	if m.CreateFn != nil {
		return m.CreateFn(contract)
	}
	created := *contract
	created.ID = m.NextID
	created.CreatedAt = time.Now()
	m.Contracts[created.ID] = &created
	m.NextID++
	return &created, nil
}

// GetByID retrieves a contract by ID
func (m *MockContractRepository) GetByID(id int32) (*domain.Contract, error) {
	if contract, ok := m.Contracts[id]; ok {
		return contract, nil
	}
	return nil, domain.ErrContractNotFound
}

// MockInstallmentRepository is a mock implementation of domain.InstallmentRepository
type MockInstallmentRepository struct {
	Installments  map[int32]*domain.Installment
	StatusRows    []*domain.InstallmentStatus
	NextID        int32
	CreateBatchFn func(installments []*domain.Installment) error
	ListStatusErr error
}

// NewMockInstallmentRepository creates a new MockInstallmentRepository
func NewMockInstallmentRepository() *MockInstallmentRepository {
	return &MockInstallmentRepository{
		Installments: make(map[int32]*domain.Installment),
		NextID:       1,
	}
}

// CreateBatchTx creates installments, ignoring the transaction handle
func (m *MockInstallmentRepository) CreateBatchTx(tx interface{}, installments []*domain.Installment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(installments)
	}
	for _, inst := range installments {
		created := *inst
		created.ID = m.NextID
		created.CreatedAt = time.Now()
		m.Installments[created.ID] = &created
		m.NextID++
	}
	return nil
}

// GetByID retrieves an installment by ID
func (m *MockInstallmentRepository) GetByID(id int32) (*domain.Installment, error) {
	if inst, ok := m.Installments[id]; ok {
		return inst, nil
	}
	return nil, domain.ErrInstallmentNotFound
}

// GetByContractID retrieves installments of a contract ordered by due date
func (m *MockInstallmentRepository) GetByContractID(contractID int32) ([]*domain.Installment, error) {
	var result []*domain.Installment
	for _, inst := range m.Installments {
		if inst.ContractID == contractID {
			result = append(result, inst)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DueDate.Before(result[j].DueDate) })
	return result, nil
}

// ListStatus returns the configured status rows
func (m *MockInstallmentRepository) ListStatus() ([]*domain.InstallmentStatus, error) {
	if m.ListStatusErr != nil {
		return nil, m.ListStatusErr
	}
	return m.StatusRows, nil
}

// MarkPaid transitions an unpaid installment to paid
func (m *MockInstallmentRepository) MarkPaid(id int32, paymentDate time.Time) (*domain.Installment, error) {
	inst, ok := m.Installments[id]
	if !ok {
		return nil, domain.ErrInstallmentNotFound
	}
	if inst.IsPaid {
		return nil, domain.ErrInstallmentAlreadyPaid
	}
	inst.IsPaid = true
	inst.PaidAmount = inst.Amount
	inst.PaymentDate = &paymentDate
	return inst, nil
}

// Summarize aggregates over the stored installments
func (m *MockInstallmentRepository) Summarize(now time.Time) (domain.Summary, error) {
	installments := make([]*domain.Installment, 0, len(m.Installments))
	for _, inst := range m.Installments {
		installments = append(installments, inst)
	}
	return domain.ComputeSummary(installments, now), nil
}

// AddInstallment adds an installment to the mock repository (helper for tests)
func (m *MockInstallmentRepository) AddInstallment(inst *domain.Installment) {
	m.Installments[inst.ID] = inst
	if inst.ID >= m.NextID {
		m.NextID = inst.ID + 1
	}
}

// MockReportStore is a mock implementation of storage.ReportStore.
// Uploads may come from background goroutines, so access is guarded.
type MockReportStore struct {
	mu       sync.Mutex
	keys     []string
	uploads  [][]byte
	UploadFn func(objectPath string, data []byte) (string, error)
}

// NewMockReportStore creates a new MockReportStore
func NewMockReportStore() *MockReportStore {
	return &MockReportStore{}
}

// Upload records the uploaded report
func (m *MockReportStore) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	if m.UploadFn != nil {
		return m.UploadFn(objectPath, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, objectPath)
	m.uploads = append(m.uploads, data)
	return objectPath, nil
}

// Keys returns the object paths uploaded so far
func (m *MockReportStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.keys...)
}

// Uploads returns the payloads uploaded so far
func (m *MockReportStore) Uploads() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.uploads...)
}

// MockEventPublisher records published WebSocket events
type MockEventPublisher struct {
	Events []ws.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(event ws.Event) {
	m.Events = append(m.Events, event)
}

// ErrInjected is a sentinel for failure-injection hooks
var ErrInjected = errors.New("injected failure")
