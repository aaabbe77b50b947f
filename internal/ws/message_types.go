package ws

// Типы широковещательных событий платформы
const (
	// LEADERBOARD_UPDATE сообщает об изменении таблицы лидеров
	LEADERBOARD_UPDATE = "LEADERBOARD_UPDATE"

	// VOTE_UPDATE сообщает об обновлении счетчиков голосов викторины
	VOTE_UPDATE = "VOTE_UPDATE"

	// QUIZ_GENERATED сообщает о появлении новой AI-викторины
	QUIZ_GENERATED = "QUIZ_GENERATED"

	// BADGE_MINTED сообщает о выпуске нового NFT-бейджа
	BADGE_MINTED = "BADGE_MINTED"
)
