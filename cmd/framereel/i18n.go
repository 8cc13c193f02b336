// Package main provides localization for the framereel CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Input/Output":      "入出力",
		"Video and Quality": "動画と品質",
		"Configuration":     "設定",
		"Logging":           "ログ",

		// Root command
		"Assemble a directory of still frames into a video": "静止画フレームのディレクトリから動画を作成",

		// Assemble command
		"Encode the frames of a directory as a video (default)":                 "ディレクトリ内のフレームを動画にエンコード（デフォルト）",
		"Frames are ordered by file name. The first frame sets the video size.": "フレームはファイル名順に並べられます。動画のサイズは最初のフレームで決まります。",

		// Inspect command
		"Show the video track of an MP4 or MOV file":  "MP4またはMOVファイルの映像トラックを表示",
		"exactly one video file argument is required": "動画ファイルの引数を1つだけ指定してください",

		// Sample command
		"Write a numbered sequence of synthetic BMP frames": "連番の合成BMPフレームを書き出し",
		"Directory to write the frames to":                  "フレームの書き出し先ディレクトリ",
		"Number of frames":                                  "フレーム数",
		"Frame width in pixels":                             "フレームの幅（ピクセル）",
		"Frame height in pixels":                            "フレームの高さ（ピクセル）",

		// Version command
		"Show version information": "バージョン情報を表示",
		"framereel version %s":     "framereel バージョン %s",

		// Input/Output flags
		"Directory containing the frames":                       "フレームを含むディレクトリ",
		"Output video file path":                                "出力動画ファイルパス",
		"File name suffix that selects frames (case-sensitive)": "フレームを選択するファイル名の接尾辞（大文字小文字を区別）",

		// Video flags
		"Frames per second":                                                    "1秒あたりのフレーム数",
		"Four-character codec tag (%s)":                                        "4文字のコーデックタグ（%s）",
		"Encoder quality (0 = codec default, lower is better)":                 "エンコード品質（0 = コーデックのデフォルト、低いほど高品質）",
		"Path to the ffmpeg executable (falls back to FFMPEG_PATH, then PATH)": "ffmpeg実行ファイルのパス（未指定時はFFMPEG_PATH、次にPATHを使用）",
		"Encode MJPG through ffmpeg when it is available":                      "ffmpegが利用可能な場合はMJPGをffmpegでエンコード",

		// Configuration flags
		"YAML configuration file":                            "YAML設定ファイル",
		"Output execution summary to file (Markdown format)": "実行サマリーをファイルに出力（Markdown形式）",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Inspect output
		"Codec":      "コーデック",
		"Size":       "サイズ",
		"Frames":     "フレーム数",
		"Frame rate": "フレームレート",
		"Duration":   "再生時間",
		"Layout":     "構成",
		"fragmented": "フラグメント化",

		// Results
		"Video created successfully: %s": "動画を作成しました: %s",

		// Error messages
		"Error: %s": "エラー: %s",
	})
}
