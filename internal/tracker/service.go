package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"jobseeker/internal/auth"

	"gorm.io/gorm"
)

var (
	ErrNotSignedIn  = errors.New("not signed in")
	ErrUserNotFound = errors.New("user not found")
	ErrJobNotFound  = errors.New("job does not exist or access is denied")
	ErrInvalidJob   = errors.New("invalid job")
	ErrStoreWrite   = errors.New("store write failed")
)

type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, Now: time.Now}
}

func (s *Service) today() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// authorize checks the sign-in flag and resolves the caller to a user id.
func (s *Service) authorize(ctx context.Context, c Caller) (uint64, error) {
	if !c.SignedIn {
		return 0, ErrNotSignedIn
	}
	var u auth.User
	err := s.DB.WithContext(ctx).Where("username = ?", c.Username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lookup user: %w", err)
	}
	return u.ID, nil
}

func (s *Service) AddJob(ctx context.Context, c Caller, in JobInput) (*Job, error) {
	uid, err := s.authorize(ctx, c)
	if err != nil {
		return nil, err
	}
	if in.Category == nil || strings.TrimSpace(*in.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidJob)
	}

	today := FormatDate(s.today())
	j := Job{
		Title:        in.Title,
		Company:      in.Company,
		Notes:        in.Notes,
		Link:         in.Link,
		DateCreated:  today,
		LastModified: today,
		Active:       true,
		UserID:       uid,
		Category:     strings.ToLower(*in.Category),
	}
	if err := s.DB.WithContext(ctx).Create(&j).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	return &j, nil
}

// UpdateJob applies the supplied fields, reactivates the job and bumps
// last_modified. Ownership is part of the update condition.
func (s *Service) UpdateJob(ctx context.Context, c Caller, jobID uint64, in JobUpdate) (*JobUpdate, error) {
	uid, err := s.authorize(ctx, c)
	if err != nil {
		return nil, err
	}

	today := FormatDate(s.today())
	active := true
	in.Active = &active
	in.LastModified = &today

	fields := map[string]any{
		"active":        true,
		"last_modified": today,
	}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Company != nil {
		fields["company"] = *in.Company
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if in.Link != nil {
		fields["link"] = *in.Link
	}
	if in.Category != nil {
		cat := strings.ToLower(*in.Category)
		in.Category = &cat
		fields["category"] = cat
	}

	res := s.DB.WithContext(ctx).Model(&Job{}).
		Where("id = ? AND user_id = ?", jobID, uid).
		Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreWrite, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrJobNotFound
	}
	return &in, nil
}

func (s *Service) DeleteJob(ctx context.Context, c Caller, jobID uint64) error {
	uid, err := s.authorize(ctx, c)
	if err != nil {
		return err
	}

	res := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", jobID, uid).
		Delete(&Job{})
	if res.Error != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// ListJobs returns the caller's jobs matching filter, most recently modified first.
// "all" means every active job, "inactive" every inactive one, anything else an
// active job of that category.
func (s *Service) ListJobs(ctx context.Context, c Caller, filter string) ([]Job, error) {
	uid, err := s.authorize(ctx, c)
	if err != nil {
		return nil, err
	}

	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		filter = FilterAll
	}

	q := s.DB.WithContext(ctx).Where("user_id = ?", uid)
	switch filter {
	case FilterAll:
		q = q.Where("active = ?", true)
	case FilterInactive:
		q = q.Where("active = ?", false)
	default:
		q = q.Where("active = ? AND category = ?", true, filter)
	}

	jobs := []Job{}
	if err := q.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	sortByLastModified(jobs)
	return jobs, nil
}

// Refresh deactivates the caller's jobs that have gone stale and returns how many changed.
func (s *Service) Refresh(ctx context.Context, c Caller) (int64, error) {
	uid, err := s.authorize(ctx, c)
	if err != nil {
		return 0, err
	}

	today := s.today()
	var n int64
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var jobs []Job
		if err := tx.Where("user_id = ? AND active = ?", uid, true).Find(&jobs).Error; err != nil {
			return err
		}
		var err error
		n, err = deactivateStale(tx.Where("user_id = ?", uid), jobs, today)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	return n, nil
}

// RefreshAll runs the staleness sweep over every user's active jobs.
func (s *Service) RefreshAll(ctx context.Context) (int64, error) {
	today := s.today()
	var total int64
	var batch []Job

	res := s.DB.WithContext(ctx).Where("active = ?", true).
		FindInBatches(&batch, 500, func(_ *gorm.DB, _ int) error {
			n, err := deactivateStale(s.DB.WithContext(ctx), batch, today)
			total += n
			return err
		})
	if res.Error != nil {
		return total, fmt.Errorf("%w: %w", ErrStoreWrite, res.Error)
	}
	return total, nil
}

// Stats counts the caller's jobs per bucket. "all" counts every active job,
// including categories without a bucket of their own.
func (s *Service) Stats(ctx context.Context, c Caller) (map[string]int64, error) {
	uid, err := s.authorize(ctx, c)
	if err != nil {
		return nil, err
	}

	type row struct {
		Category string
		Active   bool
		N        int64
	}
	var rows []row
	if err := s.DB.WithContext(ctx).Model(&Job{}).
		Select("category, active, count(*) as n").
		Where("user_id = ?", uid).
		Group("category, active").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	counts := map[string]int64{FilterAll: 0, FilterInactive: 0}
	for _, cat := range Categories {
		counts[cat] = 0
	}
	for _, r := range rows {
		if !r.Active {
			counts[FilterInactive] += r.N
			continue
		}
		counts[FilterAll] += r.N
		if _, ok := counts[r.Category]; ok && r.Category != FilterAll && r.Category != FilterInactive {
			counts[r.Category] += r.N
		}
	}
	return counts, nil
}

// ExportJobs returns all of the caller's jobs, active or not.
func (s *Service) ExportJobs(ctx context.Context, c Caller) ([]Job, error) {
	uid, err := s.authorize(ctx, c)
	if err != nil {
		return nil, err
	}
	jobs := []Job{}
	if err := s.DB.WithContext(ctx).Where("user_id = ?", uid).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("export jobs: %w", err)
	}
	sortByLastModified(jobs)
	return jobs, nil
}

// deactivateStale marks the stale jobs among those read as inactive. Each write
// only matches rows still active with the last_modified that was read, so a job
// updated after the read keeps its state.
func deactivateStale(q *gorm.DB, jobs []Job, today time.Time) (int64, error) {
	byDate := map[string][]uint64{}
	for _, j := range jobs {
		if IsStale(j.LastModified, today) {
			byDate[j.LastModified] = append(byDate[j.LastModified], j.ID)
		}
	}

	var n int64
	for lastModified, ids := range byDate {
		res := q.Session(&gorm.Session{}).Model(&Job{}).
			Where("id IN ? AND last_modified = ? AND active = ?", ids, lastModified, true).
			Update("active", false)
		if res.Error != nil {
			return n, res.Error
		}
		n += res.RowsAffected
	}
	return n, nil
}

// sortByLastModified orders by calendar date, newest first. String order would put
// 2024-9-30 ahead of 2024-10-1.
func sortByLastModified(jobs []Job) {
	sort.SliceStable(jobs, func(a, b int) bool {
		ta, _ := ParseDate(jobs[a].LastModified)
		tb, _ := ParseDate(jobs[b].LastModified)
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return jobs[a].ID > jobs[b].ID
	})
}
