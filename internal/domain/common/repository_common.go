package common

// CursorPage はカーソルページング指定
type CursorPage struct {
	After string // 直前ページの最後のカーソル（空なら先頭）
	Limit int
}

// CursorPageResult はカーソルページング結果（ジェネリクスでアイテム型を受け取る）
type CursorPageResult[T any] struct {
	Items      []T
	NextCursor *string // 次ページがなければ nil
	Limit      int
}

// Exhausted は「このページで打ち止めかどうか」を返す。
// 取得件数が Limit 未満（0件含む）なら、それ以上ページは存在しない。
func (r CursorPageResult[T]) Exhausted() bool {
	return len(r.Items) < r.Limit
}
