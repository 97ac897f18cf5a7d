// Package export test doubles: an in-memory repository with call counters,
// a counting decrypter, and a capturing audit recorder.
package export

import (
	"database/sql"
	"errors"
	"time"

	"caseport/internal/audit"
	"caseport/internal/crypto"
	"caseport/internal/models"
)

// mockRepo is an in-memory db.ExportRepository that counts method calls so
// tests can assert which repositories an export touched.
type mockRepo struct {
	cases     map[int64]*models.Case
	users     map[int64]*models.User
	evidence  map[int64][]*models.Evidence
	deadlines map[int64][]*models.Deadline
	notes     map[int64][]*models.Note
	documents map[int64][]*models.Document

	calls  map[string]int
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		cases:     make(map[int64]*models.Case),
		users:     make(map[int64]*models.User),
		evidence:  make(map[int64][]*models.Evidence),
		deadlines: make(map[int64][]*models.Deadline),
		notes:     make(map[int64][]*models.Note),
		documents: make(map[int64][]*models.Document),
		calls:     make(map[string]int),
	}
}

func (m *mockRepo) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *mockRepo) CreateCase(c *models.Case) error {
	c.ID = m.id()
	m.cases[c.ID] = c
	return nil
}

func (m *mockRepo) GetCase(id int64) (*models.Case, error) {
	m.calls["GetCase"]++
	c, ok := m.cases[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (m *mockRepo) ListCasesByUser(userID int64) ([]*models.Case, error) {
	m.calls["ListCasesByUser"]++
	var out []*models.Case
	for _, c := range m.cases {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepo) CreateEvidence(e *models.Evidence) error {
	e.ID = m.id()
	m.evidence[e.CaseID] = append(m.evidence[e.CaseID], e)
	return nil
}

func (m *mockRepo) ListEvidenceByCase(caseID int64) ([]*models.Evidence, error) {
	m.calls["ListEvidenceByCase"]++
	return m.evidence[caseID], nil
}

func (m *mockRepo) CreateDeadline(d *models.Deadline) error {
	d.ID = m.id()
	m.deadlines[d.CaseID] = append(m.deadlines[d.CaseID], d)
	return nil
}

func (m *mockRepo) ListDeadlinesByCase(caseID int64) ([]*models.Deadline, error) {
	m.calls["ListDeadlinesByCase"]++
	return m.deadlines[caseID], nil
}

func (m *mockRepo) CreateNote(n *models.Note) error {
	n.ID = m.id()
	m.notes[n.CaseID] = append(m.notes[n.CaseID], n)
	return nil
}

func (m *mockRepo) ListNotesByCase(caseID int64) ([]*models.Note, error) {
	m.calls["ListNotesByCase"]++
	return m.notes[caseID], nil
}

func (m *mockRepo) CreateDocument(d *models.Document) error {
	d.ID = m.id()
	m.documents[d.CaseID] = append(m.documents[d.CaseID], d)
	return nil
}

func (m *mockRepo) ListDocumentsByCase(caseID int64) ([]*models.Document, error) {
	m.calls["ListDocumentsByCase"]++
	return m.documents[caseID], nil
}

func (m *mockRepo) CreateUser(u *models.User) error {
	u.ID = m.id()
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) GetUser(id int64) (*models.User, error) {
	m.calls["GetUser"]++
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

// countingDecrypter wraps a real Encryptor and counts Decrypt calls.
type countingDecrypter struct {
	enc   *crypto.Encryptor
	calls int
}

func (d *countingDecrypter) Decrypt(ciphertext string) (string, error) {
	d.calls++
	return d.enc.Decrypt(ciphertext)
}

// failingDecrypter always fails, for decryption-error propagation tests.
type failingDecrypter struct{}

func (failingDecrypter) Decrypt(string) (string, error) {
	return "", crypto.ErrInvalidCiphertext
}

// fakeRecorder captures audit entries; optionally fails.
type fakeRecorder struct {
	entries []audit.Entry
	fail    bool
}

func (f *fakeRecorder) LogAction(entry audit.Entry) error {
	if f.fail {
		return errors.New("audit sink unavailable")
	}
	f.entries = append(f.entries, entry)
	return nil
}

// fixture holds one seeded case with encrypted fields and the pieces
// needed to drive the pipeline against it.
type fixture struct {
	repo     *mockRepo
	dec      *countingDecrypter
	recorder *fakeRecorder
	enc      *crypto.Encryptor

	user  *models.User
	owner int64
	c     *models.Case
}

// newFixture seeds a case owned by user 1 with plaintext values encrypted
// under a throwaway key.
func newFixture() *fixture {
	enc, err := crypto.NewEncryptor("export-test-key")
	if err != nil {
		panic(err)
	}

	repo := newMockRepo()
	user := &models.User{Username: "jharlow"}
	repo.CreateUser(user)

	f := &fixture{
		repo:     repo,
		dec:      &countingDecrypter{enc: enc},
		recorder: &fakeRecorder{},
		enc:      enc,
		user:     user,
		owner:    user.ID,
	}

	f.c = f.seedCase(user.ID, "State v. Harmon", "Wrongful termination matter")
	return f
}

func (f *fixture) encrypt(plaintext string) string {
	ct, err := f.enc.Encrypt(plaintext)
	if err != nil {
		panic(err)
	}
	return ct
}

func (f *fixture) encryptPtr(plaintext string) *string {
	ct := f.encrypt(plaintext)
	return &ct
}

func (f *fixture) seedCase(userID int64, title, description string) *models.Case {
	c := &models.Case{
		UserID:      userID,
		Title:       f.encrypt(title),
		Description: f.encryptPtr(description),
		Status:      models.CaseStatusOpen,
		CaseNumber:  "2025-CV-0042",
		CreatedAt:   time.Now().Unix(),
		UpdatedAt:   time.Now().Unix(),
	}
	f.repo.CreateCase(c)
	return c
}

func (f *fixture) seedEvidence(caseID int64, title, evidenceType string) *models.Evidence {
	obtained := time.Now().Add(-48 * time.Hour).Unix()
	e := &models.Evidence{
		CaseID:       caseID,
		Title:        f.encrypt(title),
		EvidenceType: evidenceType,
		FilePath:     f.encryptPtr("/vault/" + title + ".bin"),
		ObtainedDate: &obtained,
		Status:       "collected",
	}
	f.repo.CreateEvidence(e)
	return e
}

func (f *fixture) seedDeadline(caseID int64, title string, due time.Time, status string) *models.Deadline {
	d := &models.Deadline{
		CaseID:   caseID,
		Title:    f.encrypt(title),
		DueDate:  due.Unix(),
		Priority: models.PriorityHigh,
		Status:   status,
	}
	f.repo.CreateDeadline(d)
	return d
}

func (f *fixture) seedNote(caseID int64, title, content string) *models.Note {
	n := &models.Note{
		CaseID:    caseID,
		Title:     f.encryptPtr(title),
		Content:   f.encrypt(content),
		CreatedAt: time.Now().Unix(),
	}
	f.repo.CreateNote(n)
	return n
}

func (f *fixture) seedDocument(caseID int64, fileName string) *models.Document {
	d := &models.Document{
		CaseID:   caseID,
		FileName: f.encrypt(fileName),
		FilePath: f.encrypt("/docs/" + fileName),
	}
	f.repo.CreateDocument(d)
	return d
}

// service builds an export Service over the fixture writing into dir.
func (f *fixture) service(dir string) *Service {
	return NewService(f.repo, f.dec, f.recorder, dir)
}

// aggregator builds an Aggregator over the fixture.
func (f *fixture) aggregator() *Aggregator {
	return NewAggregator(f.repo, f.dec)
}
