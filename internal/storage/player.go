package storage

import "github.com/vovakirdan/tui-snake/internal/games/snake"

// PlayerStore binds a Store to one player name.
type PlayerStore struct {
	store  *Store
	player string
}

// ForPlayer returns the best-score view of s for player.
func (s *Store) ForPlayer(player string) PlayerStore {
	return PlayerStore{store: s, player: player}
}

// Player returns the bound player name.
func (p PlayerStore) Player() string {
	return p.player
}

// ReadBestScore implements snake.BestScoreStore.
func (p PlayerStore) ReadBestScore() (int, error) {
	return p.store.BestScore(p.player)
}

// PersistBestScore implements snake.BestScoreStore.
func (p PlayerStore) PersistBestScore(score int) error {
	return p.store.SetBestScore(p.player, score)
}

// RecordRun stores a finished run. Runs that scored nothing are skipped.
func (p PlayerStore) RecordRun(score, length int) error {
	if score <= 0 {
		return nil
	}
	_, err := p.store.SaveScore(p.player, score, length)
	return err
}

// Ensure PlayerStore implements BestScoreStore
var _ snake.BestScoreStore = PlayerStore{}
