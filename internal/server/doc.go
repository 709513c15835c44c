// Package server は、TCPソケット上で動く最小限のHTTP/1.1サーバーです。
//
// net/http は使わず、受信したバイト列を自前で解析してレスポンスを組み立てます。
//
// 責務:
//   - リスニングソケットの作成（SO_REUSEADDR、バックログ5）
//   - 接続ごとのゴルーチン起動（同時接続数の上限なし）
//   - 静的ファイル、登録済みルート、404 への振り分け
//   - アクセスログの記録
//   - 障害時の500応答
//
// 仕様:
//   - 1接続につき1リクエスト、応答後に必ず切断する（keep-alive なし）
//   - 受信は固定サイズのバッファへの1回の読み込みのみ
//   - 読み書きにタイムアウトはない
package server
