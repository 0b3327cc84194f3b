package services

import (
	"sort"
	"sync"
	"time"

	"careerlift_backend/internal/models"
	"careerlift_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory реализации репозиториев. Повторяют контракт настоящих
// gorm-реализаций, включая конфликтные сентинел-ошибки, чтобы сервисы
// тестировались без базы.

type memClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newMemClock() *memClock {
	return &memClock{cur: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

// Now монотонно сдвигает часы, чтобы created_at различались.
func (c *memClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

// --- users ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	clock *memClock
}

func newFakeUserRepo(clock *memClock) *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}, clock: clock}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = r.clock.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateRole(id string, role models.UserRole, changedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Role = role
	u.RoleChangedAt = &changedAt
	return nil
}

// --- resumes ---

type fakeResumeRepo struct {
	mu      sync.Mutex
	resumes map[string]*models.Resume
	clock   *memClock
}

func newFakeResumeRepo(clock *memClock) *fakeResumeRepo {
	return &fakeResumeRepo{resumes: map[string]*models.Resume{}, clock: clock}
}

func (r *fakeResumeRepo) Create(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if resume.ID == "" {
		resume.ID = uuid.NewString()
	}
	resume.CreatedAt = r.clock.Now()
	cp := *resume
	r.resumes[resume.ID] = &cp
	return nil
}

func (r *fakeResumeRepo) FindByID(id string) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resumes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *fakeResumeRepo) FindByUser(userID string) ([]models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Resume
	for _, res := range r.resumes {
		if res.UserID == userID {
			out = append(out, *res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeResumeRepo) Update(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resumes[resume.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *resume
	r.resumes[resume.ID] = &cp
	return nil
}

func (r *fakeResumeRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resumes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.resumes, id)
	return nil
}

// --- coach profiles ---

type fakeCoachRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.CoachProfile
	clock    *memClock
}

func newFakeCoachRepo(clock *memClock) *fakeCoachRepo {
	return &fakeCoachRepo{profiles: map[string]*models.CoachProfile{}, clock: clock}
}

func (r *fakeCoachRepo) Create(profile *models.CoachProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	profile.CreatedAt = r.clock.Now()
	cp := *profile
	r.profiles[profile.ID] = &cp
	return nil
}

func (r *fakeCoachRepo) FindByID(id string) (*models.CoachProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeCoachRepo) FindByUserID(userID string) (*models.CoachProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCoachRepo) Update(profile *models.CoachProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *profile
	r.profiles[profile.ID] = &cp
	return nil
}

func (r *fakeCoachRepo) ListComplete(limit int) ([]models.CoachProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CoachProfile
	for _, p := range r.profiles {
		if p.Complete {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- tasks ---

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*models.VerificationTask
	clock *memClock
}

func newFakeTaskRepo(clock *memClock) *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]*models.VerificationTask{}, clock: clock}
}

func (r *fakeTaskRepo) Create(task *models.VerificationTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.CreatedAt = r.clock.Now()
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) FindByID(id string) (*models.VerificationTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) ListOpen(limit int) ([]models.VerificationTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.VerificationTask
	for _, t := range r.tasks {
		if t.Status == models.TaskStatusOpen || t.Status == models.TaskStatusBidding {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTaskRepo) ListBySeeker(seekerID string) ([]models.VerificationTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.VerificationTask
	for _, t := range r.tasks {
		if t.SeekerID == seekerID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTaskRepo) ListByAssignedCoach(coachID string) ([]models.VerificationTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.VerificationTask
	for _, t := range r.tasks {
		if t.AssignedCoachID != nil && *t.AssignedCoachID == coachID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTaskRepo) UpdateStatus(id string, from, to models.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.Status != from {
		return repositories.ErrTaskConflict
	}
	t.Status = to
	return nil
}

func (r *fakeTaskRepo) MarkCompleted(id string, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.Status != models.TaskStatusInProgress {
		return repositories.ErrTaskConflict
	}
	t.Status = models.TaskStatusCompleted
	t.CompletedAt = &completedAt
	return nil
}

// --- bids ---

type fakeBidRepo struct {
	mu    sync.Mutex
	bids  map[string]*models.Bid
	tasks *fakeTaskRepo
	clock *memClock
}

func newFakeBidRepo(tasks *fakeTaskRepo, clock *memClock) *fakeBidRepo {
	return &fakeBidRepo{bids: map[string]*models.Bid{}, tasks: tasks, clock: clock}
}

func (r *fakeBidRepo) Create(bid *models.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bid.ID == "" {
		bid.ID = uuid.NewString()
	}
	bid.CreatedAt = r.clock.Now()
	cp := *bid
	r.bids[bid.ID] = &cp
	return nil
}

func (r *fakeBidRepo) FindByID(id string) (*models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bids[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBidRepo) ListByTask(taskID string) ([]models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Bid
	for _, b := range r.bids {
		if b.TaskID == taskID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeBidRepo) ListByCoach(coachID string) ([]models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Bid
	for _, b := range r.bids {
		if b.CoachID == coachID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// AcceptBid повторяет транзакционную семантику gorm-реализации:
// статусный гард по задаче решает конфликт, дальше мутации атомарны
// под одним локом.
func (r *fakeBidRepo) AcceptBid(bid *models.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks.mu.Lock()
	defer r.tasks.mu.Unlock()

	task, ok := r.tasks.tasks[bid.TaskID]
	if !ok {
		return repositories.ErrNotFound
	}
	if task.Status != models.TaskStatusOpen && task.Status != models.TaskStatusBidding {
		return repositories.ErrTaskConflict
	}

	stored, ok := r.bids[bid.ID]
	if !ok {
		return repositories.ErrNotFound
	}

	task.Status = models.TaskStatusAssigned
	coachID := stored.CoachID
	price := stored.Price
	task.AssignedCoachID = &coachID
	task.FinalPrice = &price

	stored.Status = models.BidStatusAccepted
	for _, sibling := range r.bids {
		if sibling.TaskID == task.ID && sibling.ID != stored.ID && sibling.Status == models.BidStatusPending {
			sibling.Status = models.BidStatusRejected
		}
	}
	return nil
}

// --- escrow ---

type fakeEscrowRepo struct {
	mu      sync.Mutex
	records map[string]*models.EscrowRecord // key: taskID
	clock   *memClock
}

func newFakeEscrowRepo(clock *memClock) *fakeEscrowRepo {
	return &fakeEscrowRepo{records: map[string]*models.EscrowRecord{}, clock: clock}
}

func (r *fakeEscrowRepo) Create(record *models.EscrowRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[record.TaskID]; exists {
		return repositories.ErrEscrowExists
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = r.clock.Now()
	cp := *record
	r.records[record.TaskID] = &cp
	return nil
}

func (r *fakeEscrowRepo) FindByTaskID(taskID string) (*models.EscrowRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[taskID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeEscrowRepo) Release(taskID string, releasedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[taskID]
	if !ok || rec.Status != models.EscrowStatusHeld {
		return repositories.ErrEscrowConflict
	}
	rec.Status = models.EscrowStatusReleased
	rec.ReleasedAt = &releasedAt
	return nil
}

func (r *fakeEscrowRepo) Refund(taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[taskID]
	if !ok || rec.Status != models.EscrowStatusHeld {
		return repositories.ErrEscrowConflict
	}
	rec.Status = models.EscrowStatusRefunded
	return nil
}

// --- sessions ---

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	clock    *memClock
}

func newFakeSessionRepo(clock *memClock) *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}, clock: clock}
}

func (r *fakeSessionRepo) Create(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	session.CreatedAt = r.clock.Now()
	cp := *session
	r.sessions[session.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) FindByID(id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) ListBySeeker(seekerID string) ([]models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Session
	for _, s := range r.sessions {
		if s.SeekerID == seekerID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSessionRepo) ListByCoach(coachID string) ([]models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Session
	for _, s := range r.sessions {
		if s.CoachID == coachID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSessionRepo) Update(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *session
	r.sessions[session.ID] = &cp
	return nil
}

// --- notifier ---

type fakeNotifier struct {
	mu             sync.Mutex
	bidAccepted    int
	escrowReleased int
}

func (n *fakeNotifier) BidAccepted(coachEmail, taskID string, price float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bidAccepted++
}

func (n *fakeNotifier) EscrowReleased(coachEmail, taskID string, amount float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.escrowReleased++
}

// --- fixture ---

// fixture - полный набор сервисов поверх in-memory репозиториев.
type fixture struct {
	clock      *memClock
	userRepo   *fakeUserRepo
	resumeRepo *fakeResumeRepo
	coachRepo  *fakeCoachRepo
	taskRepo   *fakeTaskRepo
	bidRepo    *fakeBidRepo
	escrowRepo *fakeEscrowRepo
	notifier   *fakeNotifier

	access      *AccessService
	marketplace *MarketplaceService
	escrow      *EscrowService
}

func newFixture() *fixture {
	clock := newMemClock()
	userRepo := newFakeUserRepo(clock)
	resumeRepo := newFakeResumeRepo(clock)
	coachRepo := newFakeCoachRepo(clock)
	taskRepo := newFakeTaskRepo(clock)
	bidRepo := newFakeBidRepo(taskRepo, clock)
	escrowRepo := newFakeEscrowRepo(clock)
	sessionRepo := newFakeSessionRepo(clock)
	notifier := &fakeNotifier{}

	access := NewAccessService(userRepo, resumeRepo, sessionRepo, coachRepo, taskRepo)
	access.now = clock.Now

	marketplace := NewMarketplaceService(taskRepo, bidRepo, userRepo, resumeRepo, access, notifier)
	marketplace.now = clock.Now

	escrow := NewEscrowService(escrowRepo, taskRepo, bidRepo, userRepo, access, notifier, "USD")
	escrow.now = clock.Now

	return &fixture{
		clock:       clock,
		userRepo:    userRepo,
		resumeRepo:  resumeRepo,
		coachRepo:   coachRepo,
		taskRepo:    taskRepo,
		bidRepo:     bidRepo,
		escrowRepo:  escrowRepo,
		notifier:    notifier,
		access:      access,
		marketplace: marketplace,
		escrow:      escrow,
	}
}

func (f *fixture) addUser(role models.UserRole) *models.User {
	user := &models.User{
		Email:        uuid.NewString() + "@careerlift.test",
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         role,
		Status:       models.UserStatusActive,
	}
	_ = f.userRepo.Create(user)
	return user
}

func (f *fixture) addResume(ownerID string) *models.Resume {
	resume := &models.Resume{
		UserID: ownerID,
		Title:  "Backend Engineer",
		Status: models.ResumeStatusDraft,
	}
	_ = f.resumeRepo.Create(resume)
	return resume
}

func (f *fixture) addTask(seekerID, resumeID string, status models.TaskStatus) *models.VerificationTask {
	task := &models.VerificationTask{
		SeekerID:       seekerID,
		ResumeID:       resumeID,
		Type:           models.TaskTypeFullReview,
		Urgency:        models.TaskUrgencyStandard,
		SuggestedPrice: 50,
		Status:         status,
	}
	_ = f.taskRepo.Create(task)
	return task
}

func (f *fixture) addBid(taskID, coachID string, price float64) *models.Bid {
	bid := &models.Bid{
		TaskID:           taskID,
		CoachID:          coachID,
		Price:            price,
		EstimatedMinutes: 45,
		Status:           models.BidStatusPending,
	}
	_ = f.bidRepo.Create(bid)
	return bid
}
