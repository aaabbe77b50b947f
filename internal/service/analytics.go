package service

import (
	"fmt"
	"time"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

// ProgressInsights - персональные инсайты по прогрессу обучения.
// Строятся детерминированно из записей прогресса и результатов.
type ProgressInsights struct {
	OverallAssessment   string    `json:"overall_assessment"`
	Strengths           []string  `json:"strengths"`
	AreasForImprovement []string  `json:"areas_for_improvement"`
	Recommendations     []string  `json:"recommendations"`
	MotivationalMessage string    `json:"motivational_message"`
	NextSteps           []string  `json:"next_steps"`
	LearningStyle       string    `json:"learning_style"`
	LearningTrend       string    `json:"learning_trend"`
	ProgressRating      int       `json:"progress_rating"`
	GeneratedAt         time.Time `json:"generated_at"`
}

// BuildInsights строит инсайты по снапшоту прогресса и результатов.
// progress == nil означает, что пользователь еще не проходил викторин.
func BuildInsights(progress *entity.UserProgress, results []entity.QuizResult) ProgressInsights {
	currentLevel := 1
	quizzesCompleted := 0
	perfectScores := 0
	if progress != nil {
		currentLevel = progress.CurrentLevel
		quizzesCompleted = progress.TotalQuizzesCompleted
		perfectScores = progress.TotalPerfectScores
	}
	avg := averageScore(results)

	insights := ProgressInsights{
		GeneratedAt:   time.Now(),
		LearningTrend: learningTrend(results),
	}

	if avg > 0.8 {
		insights.OverallAssessment = fmt.Sprintf("You're at Level %d with %d quizzes completed. Excellent progress!", currentLevel, quizzesCompleted)
	} else {
		insights.OverallAssessment = fmt.Sprintf("You're at Level %d with %d quizzes completed. Good foundation, keep practicing!", currentLevel, quizzesCompleted)
	}

	if perfectScores > 0 {
		insights.Strengths = append(insights.Strengths, "Achieving perfect scores")
	} else {
		insights.Strengths = append(insights.Strengths, "Consistent learning")
	}
	if currentLevel > 1 {
		insights.Strengths = append(insights.Strengths, "Progressing through levels")
	} else {
		insights.Strengths = append(insights.Strengths, "Building fundamentals")
	}
	insights.Strengths = append(insights.Strengths, "Commitment to continuous education")

	if avg < 0.8 {
		insights.AreasForImprovement = append(insights.AreasForImprovement, "Focus on accuracy")
	} else {
		insights.AreasForImprovement = append(insights.AreasForImprovement, "Challenge yourself with harder topics")
	}
	insights.AreasForImprovement = append(insights.AreasForImprovement,
		"Maintain consistent study habits",
		"Explore practical applications",
	)

	insights.Recommendations = []string{
		"Review incorrect answers to learn from mistakes",
		"Take time to understand explanations",
		"Practice regularly to maintain momentum",
		"Connect concepts to real-world applications",
	}

	if perfectScores > 0 {
		insights.MotivationalMessage = "Great job earning perfect scores! You're mastering the material."
	} else {
		insights.MotivationalMessage = "Keep up the great work! Every quiz brings you closer to mastery."
	}

	if currentLevel < 4 {
		insights.NextSteps = append(insights.NextSteps, "Complete current level to unlock advanced topics")
	} else {
		insights.NextSteps = append(insights.NextSteps, "Explore specialized advanced areas")
	}
	insights.NextSteps = append(insights.NextSteps,
		"Earn more NFT badges with perfect scores",
		"Share your knowledge with the community",
	)

	if quizzesCompleted > 5 {
		insights.LearningStyle = "Consistent learner"
	} else {
		insights.LearningStyle = "Getting started"
	}

	rating := currentLevel*2 + int(avg*4)
	if rating < 1 {
		rating = 1
	}
	if rating > 10 {
		rating = 10
	}
	insights.ProgressRating = rating

	return insights
}

// learningTrend сравнивает средний результат последних трех попыток
// с тремя предыдущими
func learningTrend(results []entity.QuizResult) string {
	if len(results) < 2 {
		return "Not enough data"
	}

	recent := lastN(results, 3)
	older := windowBefore(results, 3, 3)
	if len(older) == 0 {
		return "Building learning history"
	}

	recentAvg := averageScore(recent)
	olderAvg := averageScore(older)

	switch {
	case recentAvg > olderAvg+0.1:
		return "Improving"
	case recentAvg < olderAvg-0.1:
		return "Declining"
	default:
		return "Stable"
	}
}

func lastN(results []entity.QuizResult, n int) []entity.QuizResult {
	if len(results) <= n {
		return results
	}
	return results[len(results)-n:]
}

// windowBefore возвращает до size элементов, предшествующих последним skip
func windowBefore(results []entity.QuizResult, skip, size int) []entity.QuizResult {
	end := len(results) - skip
	if end <= 0 {
		return nil
	}
	start := end - size
	if start < 0 {
		start = 0
	}
	return results[start:end]
}
