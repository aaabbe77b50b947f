package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	"github.com/yourusername/learnflow-api/internal/domain/repository"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
	"github.com/yourusername/learnflow-api/internal/service/progression"
)

// QuizStatus объединяет викторину с вычисленным для пользователя состоянием доступа
type QuizStatus struct {
	entity.Quiz
	IsUnlocked  bool    `json:"is_unlocked"`
	IsCompleted bool    `json:"is_completed"`
	BestScore   *int    `json:"best_score"`
	HasNFT      bool    `json:"has_nft"`
	UserVote    *string `json:"user_vote"`
	// TotalQuestions дублируется явно, чтобы клиент не считал len(questions)
	TotalQuestions int `json:"total_questions"`
}

// QuizService предоставляет методы для работы со списком викторин
// и прогрессией разблокировки
type QuizService struct {
	quizRepo   repository.QuizRepository
	resultRepo repository.ResultRepository
	voteRepo   repository.VoteRepository
	badgeRepo  repository.BadgeRepository
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	resultRepo repository.ResultRepository,
	voteRepo repository.VoteRepository,
	badgeRepo repository.BadgeRepository,
) *QuizService {
	return &QuizService{
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		voteRepo:   voteRepo,
		badgeRepo:  badgeRepo,
	}
}

// ListQuizzes возвращает активные викторины со статусом доступа.
// userID == nil означает анонимного пользователя: ему открыта только
// первая викторина по порядку. searchQuery фильтрует по подстроке в
// названии, описании, категории, теме и сложности.
func (s *QuizService) ListQuizzes(userID *uint, sortBy string, searchQuery string) ([]QuizStatus, error) {
	quizzes, err := s.quizRepo.ListActive(sortBy)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	quizzes = filterQuizzes(quizzes, searchQuery)

	// Статус разблокировки определяется позицией в списке по order_num,
	// независимо от запрошенной сортировки
	firstID := firstQuizID(quizzes)

	if userID == nil {
		statuses := make([]QuizStatus, len(quizzes))
		for i := range quizzes {
			statuses[i] = QuizStatus{
				Quiz:           quizzes[i],
				IsUnlocked:     quizzes[i].ID == firstID,
				TotalQuestions: quizzes[i].TotalQuestions(),
			}
		}
		return statuses, nil
	}

	// Все данные пользователя выбираются одним запросом на таблицу
	results, err := s.resultRepo.GetByUser(*userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user results: %w", err)
	}

	perfectQuizIDs := make(map[uint]bool)
	bestScores := make(map[uint]int)
	for _, r := range results {
		if r.IsPerfectScore {
			perfectQuizIDs[r.QuizID] = true
		}
		if best, ok := bestScores[r.QuizID]; !ok || r.Score > best {
			bestScores[r.QuizID] = r.Score
		}
	}

	nftQuizIDs, err := s.badgeRepo.QuizIDsByUser(*userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user badges: %w", err)
	}
	nftSet := make(map[uint]bool, len(nftQuizIDs))
	for _, id := range nftQuizIDs {
		nftSet[id] = true
	}

	votes, err := s.voteRepo.GetByUser(*userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user votes: %w", err)
	}
	voteMap := make(map[uint]string, len(votes))
	for _, v := range votes {
		voteMap[v.QuizID] = v.VoteType
	}

	statuses := make([]QuizStatus, len(quizzes))
	for i := range quizzes {
		quiz := quizzes[i]

		index := 1
		if quiz.ID == firstID {
			index = 0
		}

		status := QuizStatus{
			Quiz:           quiz,
			IsUnlocked:     progression.IsUnlocked(index, &quiz, perfectQuizIDs),
			IsCompleted:    perfectQuizIDs[quiz.ID],
			HasNFT:         nftSet[quiz.ID],
			TotalQuestions: quiz.TotalQuestions(),
		}
		if best, ok := bestScores[quiz.ID]; ok {
			bestCopy := best
			status.BestScore = &bestCopy
		}
		if voteType, ok := voteMap[quiz.ID]; ok {
			voteCopy := voteType
			status.UserVote = &voteCopy
		}
		statuses[i] = status
	}
	return statuses, nil
}

// GetQuiz возвращает викторину по id, если она доступна пользователю.
// Для анонимного пользователя доступна только первая по порядку викторина,
// для аутентифицированного - проверяется идеальный результат по пререквизиту.
func (s *QuizService) GetQuiz(quizID uint, userID *uint) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}

	if userID == nil {
		first, err := s.quizRepo.GetFirstByOrder()
		if err != nil {
			return nil, err
		}
		if quiz.ID != first.ID {
			return nil, fmt.Errorf("%w: sign in to access this quiz", apperrors.ErrForbidden)
		}
		return quiz, nil
	}

	if quiz.UnlockRequirement != nil {
		hasPerfect, err := s.resultRepo.HasPerfectScore(*userID, *quiz.UnlockRequirement)
		if err != nil {
			return nil, fmt.Errorf("failed to check unlock requirement: %w", err)
		}
		if !hasPerfect {
			return nil, fmt.Errorf("%w: complete the previous quiz with a perfect score to unlock this quiz", apperrors.ErrForbidden)
		}
	}
	return quiz, nil
}

// VoteStats содержит денормализованные счетчики голосов викторины
type VoteStats struct {
	QuizID    uint `json:"quiz_id"`
	Upvotes   int  `json:"upvotes"`
	Downvotes int  `json:"downvotes"`
	VoteScore int  `json:"vote_score"`
}

// GetUserVote возвращает тип голоса пользователя за викторину.
// Отсутствие голоса - нормальное состояние, возвращается nil.
func (s *QuizService) GetUserVote(userID, quizID uint) (*string, error) {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}

	vote, err := s.voteRepo.GetByUserAndQuiz(userID, quizID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user vote: %w", err)
	}
	return &vote.VoteType, nil
}

// GetVoteStats возвращает счетчики голосов викторины
func (s *QuizService) GetVoteStats(quizID uint) (*VoteStats, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	return &VoteStats{
		QuizID:    quiz.ID,
		Upvotes:   quiz.Upvotes,
		Downvotes: quiz.Downvotes,
		VoteScore: quiz.VoteScore,
	}, nil
}

// InitializeQuizzes заполняет базу стартовым набором викторин и связывает
// их в линейную цепочку разблокировки. Повторный вызов - no-op.
func (s *QuizService) InitializeQuizzes() (int, error) {
	count, err := s.quizRepo.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count quizzes: %w", err)
	}
	if count > 0 {
		log.Printf("[QuizService] Викторины уже инициализированы (%d шт.), пропускаем", count)
		return 0, nil
	}

	quizzes := defaultQuizzes()
	for i := range quizzes {
		if err := s.quizRepo.Create(&quizzes[i]); err != nil {
			return i, fmt.Errorf("failed to create quiz %q: %w", quizzes[i].Title, err)
		}
	}

	// Каждая викторина требует идеального результата по предыдущей.
	// Ссылки идут строго назад по порядку вставки, цепочка линейна.
	for i := 1; i < len(quizzes); i++ {
		if err := s.quizRepo.SetUnlockRequirement(quizzes[i].ID, quizzes[i-1].ID); err != nil {
			return len(quizzes), fmt.Errorf("failed to set unlock requirement for quiz %q: %w", quizzes[i].Title, err)
		}
	}

	log.Printf("[QuizService] Инициализировано %d викторин", len(quizzes))
	return len(quizzes), nil
}

// firstQuizID возвращает id викторины с минимальным order_num
func firstQuizID(quizzes []entity.Quiz) uint {
	var firstID uint
	minOrder := 0
	for i := range quizzes {
		if firstID == 0 || quizzes[i].OrderNum < minOrder {
			firstID = quizzes[i].ID
			minOrder = quizzes[i].OrderNum
		}
	}
	return firstID
}

// filterQuizzes применяет поисковый фильтр по подстроке
func filterQuizzes(quizzes []entity.Quiz, searchQuery string) []entity.Quiz {
	query := strings.ToLower(strings.TrimSpace(searchQuery))
	if query == "" {
		return quizzes
	}

	filtered := make([]entity.Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		if strings.Contains(strings.ToLower(quiz.Title), query) ||
			strings.Contains(strings.ToLower(quiz.Description), query) ||
			strings.Contains(strings.ToLower(quiz.Category), query) ||
			strings.Contains(strings.ToLower(quiz.Topic), query) ||
			strings.Contains(strings.ToLower(quiz.Difficulty), query) {
			filtered = append(filtered, quiz)
		}
	}
	return filtered
}
