package services

import (
	"context"
	"sync"

	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/repositories"
	"github.com/nevrodda11/torny-aws-api/storage"
)

// Fakes embed the repository interface so any method a test does not stub
// panics when called.

type fakeTournamentRepo struct {
	repositories.TournamentRepository
	tournaments map[int]*models.Tournament
	calls       int
	created     []models.Tournament
	filters     []models.OrganiserTournamentFilter
}

func (f *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	t.ID = 40 + len(f.created)
	f.created = append(f.created, *t)
	return nil
}

func (f *fakeTournamentRepo) ListByOrganiser(_ context.Context, filter models.OrganiserTournamentFilter) ([]models.Tournament, error) {
	f.filters = append(f.filters, filter)
	return []models.Tournament{}, nil
}

func (f *fakeTournamentRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Tournament, error) {
	f.calls++
	t, ok := f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return t, nil
}

type fakeEntryRepo struct {
	repositories.EntryRepository
	createErrs []error
	created    []models.Entry
	tempTeams  []models.TemporaryTeam
	tempErr    error
}

func (f *fakeEntryRepo) Create(_ context.Context, _ repositories.SQLExecutor, e *models.Entry) error {
	f.created = append(f.created, *e)
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		return err
	}
	return nil
}

func (f *fakeEntryRepo) CreateTemporaryTeam(_ context.Context, _ repositories.SQLExecutor, t *models.TemporaryTeam) error {
	if f.tempErr != nil {
		return f.tempErr
	}
	t.ID = 70 + len(f.tempTeams)
	f.tempTeams = append(f.tempTeams, *t)
	return nil
}

type fakeTeamRepo struct {
	repositories.TeamRepository
	teams   map[int]*models.Team
	members []models.TeamMember
	nextID  int
}

func (f *fakeTeamRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return t, nil
}

func (f *fakeTeamRepo) Create(_ context.Context, _ repositories.SQLExecutor, t *models.Team) error {
	f.nextID++
	t.ID = f.nextID
	return nil
}

func (f *fakeTeamRepo) AddMember(_ context.Context, _ repositories.SQLExecutor, m *models.TeamMember) error {
	for _, existing := range f.members {
		if existing.UserID == m.UserID && equalIntPtr(existing.TeamID, m.TeamID) && equalIntPtr(existing.TempTeamID, m.TempTeamID) {
			return repositories.ErrTeamMemberConflict
		}
	}
	f.members = append(f.members, *m)
	return nil
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type fakeUserRepo struct {
	repositories.UserRepository
	users     map[int]*models.User
	details   map[int]*models.UserDetails
	created   []models.User
	profiles  []models.Profile
	createErr error
	upserted  map[int]string
	upsertErr error
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ repositories.SQLExecutor, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, _ repositories.SQLExecutor, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	u.ID = 500 + len(f.created)
	f.created = append(f.created, *u)
	return nil
}

func (f *fakeUserRepo) CreatePlayerProfile(_ context.Context, _ repositories.SQLExecutor, _ int, p *models.PlayerProfile) error {
	f.profiles = append(f.profiles, p)
	return nil
}

func (f *fakeUserRepo) CreateOrganiserProfile(_ context.Context, _ repositories.SQLExecutor, _ int, p *models.OrganiserProfile) error {
	f.profiles = append(f.profiles, p)
	return nil
}

func (f *fakeUserRepo) GetDetails(_ context.Context, id int) (*models.UserDetails, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return d, nil
}

func (f *fakeUserRepo) UpsertPlayerData(_ context.Context, _ repositories.SQLExecutor, userID int, _, _ *string, gender string) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.upserted == nil {
		f.upserted = map[int]string{}
	}
	f.upserted[userID] = gender
	return nil
}

type fakeCommentRepo struct {
	repositories.CommentRepository
	existing map[int]bool
	created  []models.Comment
}

func (f *fakeCommentRepo) Exists(_ context.Context, _ repositories.SQLExecutor, id int) (bool, error) {
	return f.existing[id], nil
}

func (f *fakeCommentRepo) Create(_ context.Context, _ repositories.SQLExecutor, c *models.Comment) error {
	c.ID = 60 + len(f.created)
	f.created = append(f.created, *c)
	return nil
}

type fakeClubRepo struct {
	repositories.ClubRepository
	clubs  map[int]*models.Club
	admins []models.ClubAdmin
}

func (f *fakeClubRepo) GetByID(_ context.Context, id int) (*models.Club, error) {
	c, ok := f.clubs[id]
	if !ok {
		return nil, repositories.ErrClubNotFound
	}
	return c, nil
}

func (f *fakeClubRepo) UpsertAdmin(_ context.Context, admin *models.ClubAdmin) error {
	f.admins = append(f.admins, *admin)
	return nil
}

type fakeSportRepo struct {
	repositories.SportRepository
	sports map[int]*models.Sport
}

func (f *fakeSportRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Sport, error) {
	s, ok := f.sports[id]
	if !ok {
		return nil, repositories.ErrSportNotFound
	}
	return s, nil
}

type fakeNotificationRepo struct {
	repositories.NotificationRepository
	created []models.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, _ repositories.SQLExecutor, n *models.Notification) error {
	n.ID = len(f.created) + 1
	f.created = append(f.created, *n)
	return nil
}

type fakeAchievementRepo struct {
	repositories.AchievementRepository
	achievements map[int]*models.Achievement
	owners       map[models.EntityType][]int
	deleted      []int
}

func (f *fakeAchievementRepo) EntityExists(_ context.Context, entityType models.EntityType, id int) (bool, error) {
	for _, owner := range f.owners[entityType] {
		if owner == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAchievementRepo) Create(_ context.Context, _ repositories.SQLExecutor, a *models.Achievement) error {
	a.ID = 11
	return nil
}

func (f *fakeAchievementRepo) GetByID(_ context.Context, id int) (*models.Achievement, error) {
	a, ok := f.achievements[id]
	if !ok {
		return nil, repositories.ErrAchievementNotFound
	}
	return a, nil
}

func (f *fakeAchievementRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeImageRepo struct {
	repositories.ImageRepository
	images               map[int]*models.Image
	created              []models.Image
	deleted              []int
	deletedByAchievement []int
}

func (f *fakeImageRepo) Create(_ context.Context, _ repositories.SQLExecutor, img *models.Image) error {
	img.ID = len(f.created) + 1
	f.created = append(f.created, *img)
	return nil
}

func (f *fakeImageRepo) GetByID(_ context.Context, id int) (*models.Image, error) {
	img, ok := f.images[id]
	if !ok {
		return nil, repositories.ErrImageNotFound
	}
	return img, nil
}

func (f *fakeImageRepo) Delete(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeImageRepo) DeleteByAchievement(_ context.Context, _ repositories.SQLExecutor, achievementID int) error {
	f.deletedByAchievement = append(f.deletedByAchievement, achievementID)
	return nil
}

type fakeImageUploader struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
}

func (f *fakeImageUploader) UploadImage(_ context.Context, _ []byte, filename string) (*storage.UploadedImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, filename)
	id := "cf-" + filename
	return &storage.UploadedImage{
		ID:       id,
		URL:      "https://imagedelivery.test/" + id + "/public",
		Filename: filename,
		Variants: storage.ImageVariants{
			Public:    "https://imagedelivery.test/" + id + "/public",
			Thumbnail: "https://imagedelivery.test/" + id + "/thumbnail",
			Avatar:    "https://imagedelivery.test/" + id + "/avatar",
		},
	}, nil
}

func (f *fakeImageUploader) DeleteImage(_ context.Context, imageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, imageID)
	return nil
}

type recordingPublisher struct {
	published []models.Notification
}

func (p *recordingPublisher) PublishNotification(n models.Notification) {
	p.published = append(p.published, n)
}
