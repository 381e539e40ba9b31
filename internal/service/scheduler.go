package service

import "ai_flashcards/internal/model"

// NextCardIndex は採点直後のデッキから次に出すカードの位置を決める。
//  1. current より後ろを Box1→Box5 の順に探し、最初に見つかった位置
//  2. 無ければ先頭から current までを同じ順で探す
//  3. それでも無ければ current のまま
//
// 箱の小ささが第1キー、前方か折り返しかが第2キー、位置が第3キー。
func NextCardIndex(cards []model.Card, current int) int {
	for box := model.MinBox; box <= model.MaxBox; box++ {
		for i := current + 1; i < len(cards); i++ {
			if cards[i].Box == box {
				return i
			}
		}
	}
	for box := model.MinBox; box <= model.MaxBox; box++ {
		for i := 0; i <= current && i < len(cards); i++ {
			if cards[i].Box == box {
				return i
			}
		}
	}
	return current
}
