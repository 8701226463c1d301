package generator

// Static file contents backing the template catalogue. Kept deliberately
// small; richer output comes from the LLM path.

const baseCSS = `* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
    line-height: 1.6;
    color: #333;
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    min-height: 100vh;
}

.container {
    max-width: 1000px;
    margin: 0 auto;
    padding: 20px;
}

@media (max-width: 768px) {
    .container {
        padding: 15px;
    }
}
`

const todoHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Todo App</title>
    <link rel="stylesheet" href="style.css">
</head>
<body>
    <div class="container">
        <h1>Todo App</h1>
        <div class="input-section">
            <input type="text" id="todoInput" placeholder="Add a new task...">
            <button id="addBtn">Add Task</button>
        </div>
        <ul id="todoList"></ul>
    </div>
    <script src="script.js"></script>
</body>
</html>
`

const todoCSS = `
.input-section {
    display: flex;
    gap: 10px;
    margin: 20px 0;
}

#todoInput {
    flex: 1;
    padding: 12px;
    border: 2px solid #ddd;
    border-radius: 8px;
    font-size: 16px;
}

#addBtn {
    padding: 12px 24px;
    background: linear-gradient(45deg, #4CAF50, #45a049);
    color: white;
    border: none;
    border-radius: 8px;
    cursor: pointer;
    font-size: 16px;
}

#todoList {
    list-style: none;
}

.todo-item {
    background: white;
    margin: 10px 0;
    padding: 15px;
    border-radius: 8px;
    box-shadow: 0 2px 4px rgba(0,0,0,0.1);
    display: flex;
    justify-content: space-between;
    align-items: center;
}
`

const todoJS = `let todos = JSON.parse(localStorage.getItem('todos')) || [];

function renderTodos() {
    const todoList = document.getElementById('todoList');
    todoList.innerHTML = '';

    todos.forEach((todo, index) => {
        const li = document.createElement('li');
        li.className = 'todo-item';
        li.innerHTML = ` + "`" + `
            <span style="${todo.completed ? 'text-decoration: line-through;' : ''}">${todo.text}</span>
            <div>
                <button onclick="toggleTodo(${index})">${todo.completed ? 'Undo' : 'Done'}</button>
                <button onclick="deleteTodo(${index})">Delete</button>
            </div>
        ` + "`" + `;
        todoList.appendChild(li);
    });
}

function addTodo() {
    const input = document.getElementById('todoInput');
    const text = input.value.trim();

    if (text) {
        todos.push({ text, completed: false });
        input.value = '';
        saveTodos();
        renderTodos();
    }
}

function toggleTodo(index) {
    todos[index].completed = !todos[index].completed;
    saveTodos();
    renderTodos();
}

function deleteTodo(index) {
    todos.splice(index, 1);
    saveTodos();
    renderTodos();
}

function saveTodos() {
    localStorage.setItem('todos', JSON.stringify(todos));
}

document.getElementById('addBtn').addEventListener('click', addTodo);
document.getElementById('todoInput').addEventListener('keypress', (e) => {
    if (e.key === 'Enter') addTodo();
});

renderTodos();
`

const calculatorHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Calculator</title>
    <link rel="stylesheet" href="style.css">
</head>
<body>
    <div class="calculator">
        <div class="display">
            <input type="text" id="result" readonly>
        </div>
        <div class="buttons">
            <button onclick="clearDisplay()">C</button>
            <button onclick="deleteLast()">&#9003;</button>
            <button onclick="appendToDisplay('/')">/</button>
            <button onclick="appendToDisplay('*')">&times;</button>
            <button onclick="appendToDisplay('7')">7</button>
            <button onclick="appendToDisplay('8')">8</button>
            <button onclick="appendToDisplay('9')">9</button>
            <button onclick="appendToDisplay('-')">-</button>
            <button onclick="appendToDisplay('4')">4</button>
            <button onclick="appendToDisplay('5')">5</button>
            <button onclick="appendToDisplay('6')">6</button>
            <button onclick="appendToDisplay('+')">+</button>
            <button onclick="appendToDisplay('1')">1</button>
            <button onclick="appendToDisplay('2')">2</button>
            <button onclick="appendToDisplay('3')">3</button>
            <button onclick="calculate()">=</button>
            <button onclick="appendToDisplay('0')">0</button>
            <button onclick="appendToDisplay('.')">.</button>
        </div>
    </div>
    <script src="script.js"></script>
</body>
</html>
`

const calculatorCSS = `
.calculator {
    background: white;
    border-radius: 15px;
    padding: 20px;
    box-shadow: 0 10px 30px rgba(0,0,0,0.2);
    max-width: 300px;
    margin: 50px auto;
}

.display input {
    width: 100%;
    height: 60px;
    font-size: 24px;
    text-align: right;
    border: none;
    background: #f1f1f1;
    border-radius: 8px;
    padding: 0 15px;
}

.buttons {
    display: grid;
    grid-template-columns: repeat(4, 1fr);
    gap: 10px;
    margin-top: 15px;
}

.buttons button {
    height: 50px;
    font-size: 18px;
    border: none;
    border-radius: 8px;
    cursor: pointer;
    transition: all 0.2s;
}
`

const calculatorJS = `let display = document.getElementById('result');
let currentInput = '0';
let shouldResetDisplay = false;

function updateDisplay() {
    display.value = currentInput;
}

function clearDisplay() {
    currentInput = '0';
    updateDisplay();
}

function deleteLast() {
    if (currentInput.length > 1) {
        currentInput = currentInput.slice(0, -1);
    } else {
        currentInput = '0';
    }
    updateDisplay();
}

function appendToDisplay(value) {
    if (shouldResetDisplay) {
        currentInput = '0';
        shouldResetDisplay = false;
    }

    if (currentInput === '0' && value !== '.') {
        currentInput = value;
    } else {
        currentInput += value;
    }
    updateDisplay();
}

function calculate() {
    try {
        const result = Function('return ' + currentInput)();
        currentInput = result.toString();
    } catch (error) {
        currentInput = 'Error';
    }
    shouldResetDisplay = true;
    updateDisplay();
}

document.addEventListener('keydown', (e) => {
    if ((e.key >= '0' && e.key <= '9') || e.key === '.') {
        appendToDisplay(e.key);
    } else if (['+', '-', '*', '/'].includes(e.key)) {
        appendToDisplay(e.key);
    } else if (e.key === 'Enter' || e.key === '=') {
        calculate();
    } else if (e.key === 'Escape') {
        clearDisplay();
    } else if (e.key === 'Backspace') {
        deleteLast();
    }
});

updateDisplay();
`

const portfolioHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Portfolio</title>
    <link rel="stylesheet" href="style.css">
</head>
<body>
    <div class="container">
        <section class="hero">
            <h1>Hi, I'm a Developer</h1>
            <p>I build things for the web.</p>
            <a class="btn" href="#projects">See my work</a>
        </section>
        <section id="projects" class="projects">
            <h2>Projects</h2>
            <div class="project-grid"></div>
        </section>
        <section class="about">
            <h2>About</h2>
            <p>A short introduction goes here.</p>
        </section>
        <section class="contact">
            <h2>Contact</h2>
            <form id="contactForm">
                <input type="email" id="email" placeholder="Your email" required>
                <textarea id="message" placeholder="Your message" required></textarea>
                <button type="submit" class="btn">Send</button>
            </form>
        </section>
    </div>
    <script src="script.js"></script>
</body>
</html>
`

const portfolioCSS = `
.hero {
    text-align: center;
    padding: 60px 0;
    background: rgba(255,255,255,0.1);
    border-radius: 15px;
    margin: 20px 0;
}

.hero h1 {
    font-size: 3rem;
    margin-bottom: 20px;
    color: white;
}

.btn {
    display: inline-block;
    padding: 12px 30px;
    background: linear-gradient(45deg, #667eea, #764ba2);
    color: white;
    text-decoration: none;
    border: none;
    border-radius: 25px;
    cursor: pointer;
    transition: transform 0.3s;
}

.btn:hover {
    transform: translateY(-2px);
}

.projects, .about, .contact {
    background: white;
    border-radius: 15px;
    padding: 30px;
    margin: 20px 0;
}

.project-grid {
    display: grid;
    grid-template-columns: repeat(auto-fill, minmax(250px, 1fr));
    gap: 20px;
    margin-top: 20px;
}

.contact form {
    display: flex;
    flex-direction: column;
    gap: 12px;
    margin-top: 12px;
}

.contact input, .contact textarea {
    padding: 12px;
    border: 2px solid #ddd;
    border-radius: 8px;
    font-size: 16px;
}
`

const portfolioJS = `const projects = [
    { name: 'Project One', description: 'A small web experiment.' },
    { name: 'Project Two', description: 'Another experiment, bigger.' },
    { name: 'Project Three', description: 'The biggest one yet.' },
];

const grid = document.querySelector('.project-grid');
projects.forEach((project) => {
    const card = document.createElement('div');
    card.className = 'project-card';
    card.innerHTML = '<h3>' + project.name + '</h3><p>' + project.description + '</p>';
    grid.appendChild(card);
});

document.getElementById('contactForm').addEventListener('submit', (e) => {
    e.preventDefault();
    alert('Thanks for reaching out!');
    e.target.reset();
});
`

const landingHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Landing Page</title>
    <link rel="stylesheet" href="style.css">
</head>
<body>
    <div class="container">
        <section class="hero">
            <h1>Your Product, Launched</h1>
            <p>The fastest way to get from idea to live site.</p>
            <a class="btn cta" href="#signup">Get started</a>
        </section>
        <section class="features">
            <div class="feature"><h3>Fast</h3><p>Instant templates for common needs.</p></div>
            <div class="feature"><h3>Flexible</h3><p>Custom generation when templates fall short.</p></div>
            <div class="feature"><h3>Live</h3><p>Watch progress update in real time.</p></div>
        </section>
        <section id="signup" class="signup">
            <h2>Stay in the loop</h2>
            <form id="signupForm">
                <input type="email" id="email" placeholder="you@example.com" required>
                <button type="submit" class="btn">Notify me</button>
            </form>
        </section>
    </div>
    <script src="script.js"></script>
</body>
</html>
`

const landingCSS = `
.hero {
    text-align: center;
    padding: 80px 0;
    color: white;
}

.hero h1 {
    font-size: 3rem;
    margin-bottom: 16px;
}

.features {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
    gap: 20px;
    margin: 40px 0;
}

.feature {
    background: white;
    border-radius: 15px;
    padding: 24px;
    box-shadow: 0 4px 12px rgba(0,0,0,0.1);
}

.btn {
    display: inline-block;
    padding: 12px 30px;
    background: linear-gradient(45deg, #667eea, #764ba2);
    color: white;
    text-decoration: none;
    border: none;
    border-radius: 25px;
    cursor: pointer;
}

.signup {
    background: white;
    border-radius: 15px;
    padding: 30px;
    text-align: center;
}

.signup form {
    display: flex;
    gap: 10px;
    justify-content: center;
    margin-top: 12px;
}

.signup input {
    padding: 12px;
    border: 2px solid #ddd;
    border-radius: 8px;
    min-width: 240px;
}
`

const landingJS = `document.querySelectorAll('a[href^="#"]').forEach((anchor) => {
    anchor.addEventListener('click', (e) => {
        e.preventDefault();
        document.querySelector(anchor.getAttribute('href')).scrollIntoView({ behavior: 'smooth' });
    });
});

document.getElementById('signupForm').addEventListener('submit', (e) => {
    e.preventDefault();
    alert('Thanks, we will be in touch!');
    e.target.reset();
});
`
