package i18n

var defaultMessages = `
	[app_usage]
	other = "Drive a remote C++ build pipeline from your terminal"

	[app_description]
	other = "matebuild fetches C++ sources from a GitHub repository, asks the AI advisor for build configuration (vcpkg.json, CMakeLists.txt, CI workflow), publishes it and watches GitHub Actions, feeding errors back to the advisor until the build passes or the attempt budget runs out."

	[help_command_usage]
	other = "Show help"

	[run_command_usage]
	other = "Start a build automation session"

	[run_command_description]
	other = "Fetches sources, generates build files and monitors CI until success or exhaustion. Press Ctrl+C to cancel cooperatively."

	[run_repo_flag_usage]
	other = "GitHub repository URL (https://github.com/owner/repo)"

	[run_name_flag_usage]
	other = "Project name used in the generated build files"

	[run_plain_flag_usage]
	other = "Print progress as plain log lines instead of the interactive view"

	[run_export_flag_usage]
	other = "Write the combined session log to this file when the run ends"

	[run_starting]
	other = "Starting build automation for {{.Repo}}"

	[run_cancelled]
	other = "Automation stopped by user"

	[run_success]
	other = "Build successful after {{.Attempts}} attempt(s) for: {{.Platforms}}"

	[run_exhausted]
	other = "Build did not succeed after {{.Attempts}}/{{.Max}} attempts. Manual review recommended."

	[run_log_exported]
	other = "Session log exported to {{.Path}}"

	[stage_fetching]
	other = "Fetching repository files..."

	[stage_files_found]
	one = "Found {{.Count}} code file"
	other = "Found {{.Count}} code files"

	[stage_analyzing]
	other = "Analyzing code requirements..."

	[stage_generating]
	other = "Generating vcpkg.json, CMakeLists.txt and CI workflow..."

	[stage_publishing]
	other = "Pushing build files to repository..."

	[stage_monitoring]
	other = "Monitoring builds and applying fixes..."

	[advisor_dependencies]
	other = "Detected dependencies: {{.Deps}}"

	[advisor_standard]
	other = "C++ standard: {{.Std}}"

	[advisor_special]
	other = "Special requirements: {{.Notes}}"

	[advisor_diagnosis]
	other = "Diagnosis: {{.Diagnosis}}"

	[file_published]
	other = "Published {{.Path}}"

	[file_publish_failed]
	other = "Failed to publish {{.Path}}"

	[file_publish_skipped]
	other = "auto_commit is off; skipped publishing {{.Path}}"

	[attempt_start]
	other = "Build attempt {{.Attempt}}/{{.Max}}"

	[waiting_for_ci]
	other = "Waiting for GitHub Actions to pick up the push..."

	[no_runs_found]
	other = "No workflow runs found yet, retrying discovery..."

	[monitoring_run]
	other = "Monitoring workflow run {{.RunID}}"

	[run_view_url]
	other = "View on GitHub: {{.URL}}"

	[build_running]
	other = "Build running... ({{.Seconds}}s)"

	[build_timeout]
	other = "Build did not complete within {{.Seconds}}s, treating as failed"

	[build_failed_analyzing]
	other = "Build failed. Analyzing error logs..."

	[logs_unavailable]
	other = "Could not retrieve error logs for run {{.RunID}}"

	[low_confidence]
	other = "Advisor has low confidence in the proposed fix ({{.Confidence}}); manual intervention may be required"

	[applying_fixes]
	other = "Applying fixes: {{.Diagnosis}}"

	[updating_file]
	other = "Updating {{.Path}}..."

	[code_change_recorded]
	other = "Code change suggested for {{.File}} (not applied): {{.Explanation}}"

	[code_change_applied]
	other = "Applied last-resort code change to {{.File}}"

	[no_fixes_applied]
	other = "No fixes could be applied"

	[waiting_next_attempt]
	other = "Waiting before next build attempt..."

	[unknown_status]
	other = "Unknown build conclusion: {{.Status}}"

	[config_command_usage]
	other = "Show or change the persisted configuration"

	[config_show_usage]
	other = "Print the current configuration"

	[config_set_usage]
	other = "Change configuration values (persisted immediately)"

	[config_updated]
	other = "Configuration saved"

	[config_invalid]
	other = "Invalid configuration: {{.Error}}"

	[secrets_command_usage]
	other = "Manage the API secrets file"

	[secrets_init_usage]
	other = "Create a template secrets file if it does not exist"

	[secrets_path_usage]
	other = "Print the location of the secrets file"

	[secrets_reload_usage]
	other = "Reload the secrets file and report which keys are present"

	[secrets_created]
	other = "Secrets file created at {{.Path}}. Add your API keys before running."

	[secrets_exists]
	other = "Secrets file already exists at {{.Path}}"

	[secrets_key_present]
	other = "{{.Key}}: configured"

	[secrets_key_missing]
	other = "{{.Key}}: missing"
	`

var spanishMessages = `
	[app_usage]
	other = "Manejá un pipeline de build de C++ desde tu terminal"

	[run_command_usage]
	other = "Iniciar una sesión de automatización de build"

	[run_starting]
	other = "Iniciando la automatización del build para {{.Repo}}"

	[run_cancelled]
	other = "Automatización detenida por el usuario"

	[run_success]
	other = "Build exitoso después de {{.Attempts}} intento(s) para: {{.Platforms}}"

	[run_exhausted]
	other = "El build no tuvo éxito después de {{.Attempts}}/{{.Max}} intentos. Se recomienda revisión manual."

	[stage_fetching]
	other = "Obteniendo archivos del repositorio..."

	[stage_files_found]
	one = "Se encontró {{.Count}} archivo de código"
	other = "Se encontraron {{.Count}} archivos de código"

	[stage_analyzing]
	other = "Analizando los requisitos del código..."

	[stage_generating]
	other = "Generando vcpkg.json, CMakeLists.txt y el workflow de CI..."

	[stage_publishing]
	other = "Subiendo los archivos de build al repositorio..."

	[stage_monitoring]
	other = "Monitoreando builds y aplicando arreglos..."

	[advisor_dependencies]
	other = "Dependencias detectadas: {{.Deps}}"

	[advisor_standard]
	other = "Estándar de C++: {{.Std}}"

	[attempt_start]
	other = "Intento de build {{.Attempt}}/{{.Max}}"

	[waiting_for_ci]
	other = "Esperando que GitHub Actions registre el push..."

	[no_runs_found]
	other = "Todavía no hay workflow runs, reintentando el descubrimiento..."

	[build_failed_analyzing]
	other = "El build falló. Analizando los logs de error..."

	[low_confidence]
	other = "El asesor tiene poca confianza en el arreglo propuesto ({{.Confidence}}); puede requerir intervención manual"

	[applying_fixes]
	other = "Aplicando arreglos: {{.Diagnosis}}"

	[updating_file]
	other = "Actualizando {{.Path}}..."

	[no_fixes_applied]
	other = "No se pudo aplicar ningún arreglo"

	[config_updated]
	other = "Configuración guardada"

	[secrets_created]
	other = "Archivo de secretos creado en {{.Path}}. Agregá tus API keys antes de ejecutar."
	`
