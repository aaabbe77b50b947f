package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	"github.com/yourusername/learnflow-api/internal/domain/repository"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
	"github.com/yourusername/learnflow-api/internal/service/progression"
)

// LeaderboardEntry представляет строку таблицы лидеров
type LeaderboardEntry struct {
	UserID                uint      `json:"user_id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	TotalScore            int       `json:"total_score"`
	CurrentLevel          int       `json:"current_level"`
	TotalQuizzesCompleted int       `json:"total_quizzes_completed"`
	TotalPerfectScores    int       `json:"total_perfect_scores"`
	TotalNFTsEarned       int       `json:"total_nfts_earned"`
	StreakCount           int       `json:"streak_count"`
	LastActiveAt          time.Time `json:"last_active_at"`
	Rank                  int       `json:"rank"`
}

// UserRank дополняет строку лидерборда общим числом участников
type UserRank struct {
	LeaderboardEntry
	TotalUsers int `json:"total_users"`
}

// LeaderboardStats содержит агрегатную статистику платформы
type LeaderboardStats struct {
	TotalUsers            int `json:"total_users"`
	TotalQuizzesCompleted int `json:"total_quizzes_completed"`
	TotalPerfectScores    int `json:"total_perfect_scores"`
	TotalNFTsEarned       int `json:"total_nfts_earned"`
}

// LeaderboardService предоставляет методы для ранжирования пользователей.
// Ранжирование пересчитывается из снапшота прогресса при каждом запросе
// и нигде не кешируется.
type LeaderboardService struct {
	progressRepo repository.ProgressRepository
	userRepo     repository.UserRepository
}

// NewLeaderboardService создает новый сервис лидерборда
func NewLeaderboardService(
	progressRepo repository.ProgressRepository,
	userRepo repository.UserRepository,
) *LeaderboardService {
	return &LeaderboardService{
		progressRepo: progressRepo,
		userRepo:     userRepo,
	}
}

// GetTopUsers возвращает полную таблицу лидеров, отсортированную по убыванию
// счета. Записи прогресса без существующего пользователя исключаются.
// limit <= 0 означает без ограничения.
func (s *LeaderboardService) GetTopUsers(limit int) ([]LeaderboardEntry, error) {
	entries, err := s.buildEntries()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// GetUserRank возвращает позицию пользователя в глобальном ранжировании.
// apperrors.ErrNotFound - если у пользователя еще нет записи прогресса.
func (s *LeaderboardService) GetUserRank(userID uint) (*UserRank, error) {
	// Запись прогресса обязана существовать до ранжирования
	if _, err := s.progressRepo.GetByUserID(userID); err != nil {
		return nil, err
	}

	entries, err := s.buildEntries()
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.UserID == userID {
			return &UserRank{LeaderboardEntry: entry, TotalUsers: len(entries)}, nil
		}
	}
	// Прогресс есть, но пользователь удален: трактуем как отсутствие ранга
	return nil, fmt.Errorf("%w: user %d has no leaderboard standing", apperrors.ErrNotFound, userID)
}

// GetStats возвращает агрегатную статистику по всем записям прогресса
func (s *LeaderboardService) GetStats() (*LeaderboardStats, error) {
	allProgress, err := s.progressRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load progress records: %w", err)
	}

	stats := &LeaderboardStats{TotalUsers: len(allProgress)}
	for _, p := range allProgress {
		stats.TotalQuizzesCompleted += p.TotalQuizzesCompleted
		stats.TotalPerfectScores += p.TotalPerfectScores
		stats.TotalNFTsEarned += p.TotalNFTsEarned
	}
	return stats, nil
}

// ExportXLSX выгружает текущую таблицу лидеров в файл Excel
func (s *LeaderboardService) ExportXLSX() (*bytes.Buffer, error) {
	entries, err := s.buildEntries()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leaderboard"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Rank", "Name", "Email", "Total Score", "Level", "Quizzes Completed", "Perfect Scores", "NFTs Earned", "Streak", "Last Active"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, entry := range entries {
		values := []interface{}{
			entry.Rank,
			entry.Name,
			entry.Email,
			entry.TotalScore,
			entry.CurrentLevel,
			entry.TotalQuizzesCompleted,
			entry.TotalPerfectScores,
			entry.TotalNFTsEarned,
			entry.StreakCount,
			entry.LastActiveAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}

// buildEntries собирает полную таблицу лидеров из снапшота прогресса
func (s *LeaderboardService) buildEntries() ([]LeaderboardEntry, error) {
	allProgress, err := s.progressRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load progress records: %w", err)
	}
	if len(allProgress) == 0 {
		return []LeaderboardEntry{}, nil
	}

	userIDs := make([]uint, 0, len(allProgress))
	progressByUser := make(map[uint]*entity.UserProgress, len(allProgress))
	for i := range allProgress {
		userIDs = append(userIDs, allProgress[i].UserID)
		progressByUser[allProgress[i].UserID] = &allProgress[i]
	}

	users, err := s.userRepo.GetByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	userByID := make(map[uint]*entity.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}

	// Записи без существующего пользователя выбывают из ранжирования
	ranked := make([]entity.UserProgress, 0, len(allProgress))
	for _, p := range allProgress {
		if _, ok := userByID[p.UserID]; ok {
			ranked = append(ranked, p)
		}
	}

	standings := progression.Standings(ranked)

	entries := make([]LeaderboardEntry, len(standings))
	for i, standing := range standings {
		progress := progressByUser[standing.UserID]
		user := userByID[standing.UserID]
		entries[i] = LeaderboardEntry{
			UserID:                standing.UserID,
			Name:                  user.DisplayNameOrDefault(),
			Email:                 user.Email,
			TotalScore:            standing.TotalScore,
			CurrentLevel:          progress.CurrentLevel,
			TotalQuizzesCompleted: progress.TotalQuizzesCompleted,
			TotalPerfectScores:    progress.TotalPerfectScores,
			TotalNFTsEarned:       progress.TotalNFTsEarned,
			StreakCount:           progress.StreakCount,
			LastActiveAt:          progress.LastActiveAt,
			Rank:                  standing.Rank,
		}
	}
	return entries, nil
}
