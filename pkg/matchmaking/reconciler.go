package matchmaking

import (
	"errors"
	"fmt"
	"time"

	"github.com/BinLe1988/heartlink/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSameUser        = errors.New("actor and target must be distinct users")
	ErrUserNotFound    = errors.New("one or both users not found")
	ErrDuplicateAction = errors.New("action already recorded for this pair")
)

// Result 滑动结果
type Result struct {
	Match         models.Match
	IsMutualMatch bool
}

// Swipe 记录一次有向滑动并判定是否促成互相匹配。
// 双边mutual翻转和两条通知必须在同一个事务里完成，
// 避免两个方向并发滑动时各自只翻转一边。
func Swipe(db *gorm.DB, actorID, targetID uint, action models.MatchAction) (*Result, error) {
	if actorID == targetID {
		return nil, ErrSameUser
	}

	var result Result

	err := db.Transaction(func(tx *gorm.DB) error {
		// 双方用户必须存在
		var actor, target models.User
		if err := tx.First(&actor, actorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.First(&target, targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		// 同一有序对只允许一次动作
		var count int64
		if err := tx.Model(&models.Match{}).
			Where("actor_id = ? AND target_id = ?", actorID, targetID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateAction
		}

		edge := models.Match{
			ActorID:  actorID,
			TargetID: targetID,
			Action:   action,
			Mutual:   false,
			Active:   true,
		}
		if err := tx.Create(&edge).Error; err != nil {
			return err
		}

		// pass不参与匹配判定
		if !action.IsPositive() {
			result.Match = edge
			return nil
		}

		// 查找反向的点赞类动作，加锁避免两个方向并发滑动互相看不见
		var reverse models.Match
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("actor_id = ? AND target_id = ? AND action IN ?",
				targetID, actorID, []models.MatchAction{models.ActionLike, models.ActionSuperLike}).
			First(&reverse).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Match = edge
				return nil
			}
			return err
		}

		// 两条边同时翻转为mutual
		now := time.Now()
		if err := tx.Model(&models.Match{}).
			Where("id IN ?", []uint{edge.ID, reverse.ID}).
			Updates(map[string]interface{}{"mutual": true, "matched_at": now}).Error; err != nil {
			return err
		}
		edge.Mutual = true
		edge.MatchedAt = &now

		// 双方各一条匹配通知
		payload := fmt.Sprintf(`{"matchId": %d}`, edge.ID)
		notifications := []models.Notification{
			{
				UserID:  actorID,
				Type:    models.NotificationMatch,
				Title:   "New Match!",
				Message: fmt.Sprintf("You matched with %s", target.Name),
				Data:    payload,
			},
			{
				UserID:  targetID,
				Type:    models.NotificationMatch,
				Title:   "New Match!",
				Message: fmt.Sprintf("You matched with %s", actor.Name),
				Data:    payload,
			},
		}
		if err := tx.Create(&notifications).Error; err != nil {
			return err
		}

		result.Match = edge
		result.IsMutualMatch = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// PairEdgeIDs 返回两个用户之间两个方向的边ID。
// 消息可能挂在任一方向的边上，会话相关的查询必须覆盖两条边。
func PairEdgeIDs(db *gorm.DB, userA, userB uint) []uint {
	var ids []uint
	db.Model(&models.Match{}).
		Where("(actor_id = ? AND target_id = ?) OR (actor_id = ? AND target_id = ?)",
			userA, userB, userB, userA).
		Pluck("id", &ids)
	return ids
}

// FindBetween 查找两个用户之间任一方向的匹配边
func FindBetween(db *gorm.DB, userA, userB uint) (*models.Match, error) {
	var match models.Match
	err := db.Where("(actor_id = ? AND target_id = ?) OR (actor_id = ? AND target_id = ?)",
		userA, userB, userB, userA).
		First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// IsParticipant 判断用户是否是某条匹配的参与方
func IsParticipant(match *models.Match, userID uint) bool {
	return match.ActorID == userID || match.TargetID == userID
}

// OtherSide 返回匹配中另一方的用户ID
func OtherSide(match *models.Match, userID uint) uint {
	if match.ActorID == userID {
		return match.TargetID
	}
	return match.ActorID
}
