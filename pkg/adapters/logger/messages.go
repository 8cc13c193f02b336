package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Assembler milestones (info)
		"Scanning %s for *%s frames":                 "%s から *%s フレームを検索中",
		"Found %d frames in %s":                      "%[2]s で %[1]d フレームを検出しました",
		"Frame geometry: %dx%d, %d channels":         "フレーム形状: %dx%d, %d チャンネル",
		"Encoding %d frames at %d fps with codec %s": "%d フレームを %d fps、コーデック %s でエンコード中",
		"Interrupted, shutting down...":              "中断されました。シャットダウン中...",
		"Using %s encoder backend":                   "%s エンコーダーバックエンドを使用します",
		"Summary saved to %s":                        "サマリーを %s に保存しました",
		"Wrote %d sample frames to %s":               "%[2]s に %[1]d 枚のサンプルフレームを書き出しました",

		// Per-frame processing (debug)
		"Appending frame %d/%d: %s": "フレームを追加中 %d/%d: %s",
		"Finalizing %s":             "%s を確定中",
		"Starting ffmpeg: %s":       "ffmpeg を起動中: %s",

		// Warnings
		"ffmpeg not available, falling back to the built-in MJPEG writer": "ffmpeg が利用できないため、内蔵 MJPEG ライターを使用します",
		"Failed to write summary: %s":                                     "サマリーの書き込みに失敗しました: %s",

		// Failure details (debug); the error itself is reported by the caller
		"Failed to open output stream: %s": "出力ストリームを開けませんでした: %s",
		"Failed to decode frame %s: %s":    "フレーム %s のデコードに失敗しました: %s",
		"Failed to encode frame %s: %s":    "フレーム %s のエンコードに失敗しました: %s",
		"Failed to finalize %s: %s":        "%s の確定に失敗しました: %s",
	})
}
