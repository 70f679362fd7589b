package i18n

var tables = map[Lang]map[string]string{
	English: {
		"title":                      "LegalKit: Legal Model Evaluation Toolkit",
		"nav_dashboard":              "Evaluation",
		"nav_results":                "Results",
		"nav_system":                 "System",
		"system_title":               "System Status",
		"recent_title":               "Recent Tasks",
		"tasks_title":                "Tasks",
		"refresh":                    "Refresh",
		"gpu_title":                  "GPU Info",
		"datasets_title":             "Supported Datasets",
		"backends_title":             "Supported Backends",
		"model":                      "Model",
		"action":                     "Action",
		"modal_task_detail":          "Task Detail",
		"modal_results":              "Evaluation Results",
		"hint_json_models":           "If models are not specified, a placeholder model json::label will be injected",
		"hint_retrieval_scope":       "Applies to datasets that implement a retrieval stage (e.g., LexRAG). Artifacts are saved under run_output.",
		"hint_judge_decoupled":       "The judge model is decoupled from the main model and used only during evaluation.",
		"override_eval_value":        "Auto-set to eval",
		"loading":                    "Loading...",
		"no_tasks":                   "No tasks",
		"no_eval_tasks":              "No evaluation tasks",
		"no_gpu":                     "No GPU detected",
		"discovered_models":          "Discovered models:",
		"no_valid_models":            "No valid models found",
		"status_pending":             "Pending",
		"status_running":             "Running",
		"status_completed":           "Completed",
		"status_failed":              "Failed",
		"metric_gpu_available":       "GPUs",
		"metric_datasets":            "Datasets",
		"metric_accelerators":        "Accelerators",
		"metric_subtasks":            "Subtasks",
		"no_backends":                "No accelerators configured",
		"err_init":                   "Failed to load initial data: ",
		"err_load_datasets":          "Failed to load datasets",
		"err_load_system":            "Failed to load system info",
		"err_load_tasks":             "Failed to load tasks list",
		"err_input_model_path":       "Please input model path",
		"err_model_discovery_failed": "Model discovery failed",
		"err_task_submit_failed":     "Task submission failed",
		"err_get_task_detail":        "Failed to get task detail",
		"err_get_results":            "Results unavailable",
		"submit_success_prefix":      "Task submitted! ID: ",
		"validate_need_model":        "Please specify at least one model",
		"validate_need_dataset":      "Please select at least one dataset",
		"validate_need_api":          "API model requires API URL and API Key",
		"validate_need_json_paths":   "JSON evaluation needs json_paths",
		"validate_json_task_eval":    "Task must be eval in JSON mode",
		"validate_need_embed_api":    "Embedding API mode requires API URL, API Key and model name",
		"detail_basic":               "Basic Info",
		"detail_task_id":             "Task ID",
		"detail_status":              "Status",
		"detail_created_at":          "Created",
		"detail_started_at":          "Started",
		"detail_completed_at":        "Completed",
		"detail_progress":            "Progress",
		"detail_config":              "Config",
		"detail_error":               "Error",
		"detail_no_results":          "No evaluation results available yet",
		"results_primary":            "Primary",
		"results_judge":              "LLM Judge Metrics",
		"results_classic":            "Classic Metrics (BLEU/Rouge/BERTScore)",
		"results_other":              "Other",
		"subtask":                    "Subtask",
		"na":                         "N/A",
		"key_help":                   "tab: switch view | enter: detail | esc: back | r: refresh | l: language | q: quit",
		"lang_saved":                 "Language set to English",
		"report_written":             "Report written to ",
		"export_done":                "Exported tasks: ",
		"request_valid":              "Request is valid",
		"last_refresh":               "Last refresh",
	},
	Chinese: {
		"title":                      "LegalKit：法律模型快速评测工具包",
		"nav_dashboard":              "评测任务",
		"nav_results":                "结果查看",
		"nav_system":                 "系统信息",
		"system_title":               "系统状态",
		"recent_title":               "最近任务",
		"tasks_title":                "任务列表",
		"refresh":                    "刷新",
		"gpu_title":                  "GPU信息",
		"datasets_title":             "支持的数据集",
		"backends_title":             "支持的加速后端",
		"model":                      "模型",
		"action":                     "操作",
		"modal_task_detail":          "任务详情",
		"modal_results":              "评测结果",
		"hint_json_models":           "若未指定 models，将自动注入占位模型 json::label",
		"hint_retrieval_scope":       "仅对实现了检索阶段的数据集生效（如 LexRAG），产物保存在 run_output。",
		"hint_judge_decoupled":       "Judge 模型与主模型解耦，仅在评测阶段调用。",
		"override_eval_value":        "自动设为 eval",
		"loading":                    "加载中...",
		"no_tasks":                   "暂无任务",
		"no_eval_tasks":              "暂无评测任务",
		"no_gpu":                     "未检测到GPU",
		"discovered_models":          "发现的模型:",
		"no_valid_models":            "未找到有效模型",
		"status_pending":             "等待中",
		"status_running":             "运行中",
		"status_completed":           "已完成",
		"status_failed":              "失败",
		"metric_gpu_available":       "可用GPU",
		"metric_datasets":            "数据集",
		"metric_accelerators":        "加速器",
		"metric_subtasks":            "子任务",
		"no_backends":                "未配置加速后端",
		"err_init":                   "加载初始数据失败: ",
		"err_load_datasets":          "加载数据集失败",
		"err_load_system":            "加载系统信息失败",
		"err_load_tasks":             "加载任务列表失败",
		"err_input_model_path":       "请输入模型路径",
		"err_model_discovery_failed": "模型发现失败",
		"err_task_submit_failed":     "任务提交失败",
		"err_get_task_detail":        "获取任务详情失败",
		"err_get_results":            "获取结果失败",
		"submit_success_prefix":      "任务提交成功! 任务ID: ",
		"validate_need_model":        "请指定至少一个模型",
		"validate_need_dataset":      "请选择至少一个数据集",
		"validate_need_api":          "API模型需要提供API URL和API Key",
		"validate_need_json_paths":   "JSON 评测模式需要提供 json_paths",
		"validate_json_task_eval":    "JSON 评测模式下任务类型必须为 eval",
		"validate_need_embed_api":    "Embedding API 模式需要提供 API URL、API Key 和模型名",
		"detail_basic":               "基本信息",
		"detail_task_id":             "任务ID",
		"detail_status":              "状态",
		"detail_created_at":          "创建时间",
		"detail_started_at":          "开始时间",
		"detail_completed_at":        "完成时间",
		"detail_progress":            "进度",
		"detail_config":              "配置",
		"detail_error":               "错误",
		"detail_no_results":          "暂无评测结果",
		"results_primary":            "主指标",
		"results_judge":              "LLM 评审指标",
		"results_classic":            "经典指标 (BLEU/Rouge/BERTScore)",
		"results_other":              "其他",
		"subtask":                    "子任务",
		"na":                         "N/A",
		"key_help":                   "tab: 切换视图 | enter: 详情 | esc: 返回 | r: 刷新 | l: 语言 | q: 退出",
		"lang_saved":                 "界面语言已设为中文",
		"report_written":             "报告已写入 ",
		"export_done":                "已导出任务: ",
		"request_valid":              "请求校验通过",
		"last_refresh":               "上次刷新",
	},
}
